package model

import "time"

type Project struct {
	Model
	Name        string          `gorm:"type:varchar(100);not null" json:"name"`          // 项目名称
	Description string          `gorm:"type:varchar(255)" json:"description"`            // 项目描述
	Progress    int             `gorm:"default:0;not null" json:"progress"`              // 进度百分比 0-100
	Status      Status          `gorm:"type:varchar(20);default:pending" json:"status"`  // 冗余的当前状态，随状态变更记录同步
	StartDate   *time.Time      `gorm:"type:date" json:"start_date"`                     // 项目开始日期
	EndDate     *time.Time      `gorm:"type:date" json:"end_date"`                       // 项目结束日期，不得早于开始日期
	CategoryID  uint            `gorm:"not null" json:"category_id"`                     // 所属分类
	Category    ProjectCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 关联到分类
	CreateByID  *uint           `json:"create_by_id"`                                    // 创建人，用户删除后置空
	CreateBy    *User           `gorm:"foreignKey:CreateByID" json:"create_by,omitempty"`

	// 按创建时间排列的状态变更历史
	StatusUpdates []ProjectStatusUpdate `gorm:"foreignKey:ProjectID" json:"status_updates,omitempty"`
}
