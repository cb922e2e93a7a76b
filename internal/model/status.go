package model

// Status 项目与状态变更记录共用的状态枚举
// 项目的冗余 status 字段始终等于最近一条状态变更记录的状态
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusOnHold     Status = "on_hold"
)

// ParseStatus 校验并归一化状态值
// 历史遗留值 active 归一化为 in_progress
func ParseStatus(s string) (Status, bool) {
	switch s {
	case "pending":
		return StatusPending, true
	case "in_progress", "active":
		return StatusInProgress, true
	case "completed":
		return StatusCompleted, true
	case "on_hold":
		return StatusOnHold, true
	}
	return "", false
}

// FileType 上传文档的声明类型，仅作提示不校验实际内容
type FileType string

const (
	FileTypePDF   FileType = "application/pdf"
	FileTypeImage FileType = "image/*"
)

// ParseFileType 校验声明的文件类型，空值回退为 PDF
func ParseFileType(s string) (FileType, bool) {
	switch s {
	case "":
		return FileTypePDF, true
	case "application/pdf":
		return FileTypePDF, true
	case "image/*":
		return FileTypeImage, true
	}
	return "", false
}
