package model

// SupportingDocument 状态变更记录的附件
// 存储路径由项目ID与文件名确定：supporting_documents/project_{id}/{filename}
type SupportingDocument struct {
	Model
	StatusUpdateID uint   `gorm:"not null;index" json:"status_update_id"` // 所属状态变更记录
	File           string `gorm:"type:varchar(512);not null" json:"file"` // 存储路径（对象 key 或本地相对路径）
}
