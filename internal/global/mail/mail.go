// Package mail 通过外部邮件服务的 HTTP API 发送通知邮件
package mail

import (
	"fmt"
	"project-tracker/config"
	"project-tracker/internal/global/httpclient"
)

type sendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Send 发送一封通知邮件，未配置邮件服务时静默跳过
func Send(to, subject, body string) error {
	cfg := config.Get().Mail
	if cfg.Endpoint == "" {
		return nil
	}

	resp, err := httpclient.Client.R().
		SetHeader("Authorization", "Bearer "+cfg.APIKey).
		SetBody(sendRequest{
			From:    cfg.From,
			To:      to,
			Subject: subject,
			Body:    body,
		}).
		Post(cfg.Endpoint)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("邮件服务返回 %s", resp.Status())
	}
	return nil
}

// SendAccountCreated 账号创建成功通知
func SendAccountCreated(to, username string) error {
	return Send(to, "账号创建成功",
		fmt.Sprintf("你好 %s，你的项目跟踪系统账号已创建成功。", username))
}
