package model

// ProjectStatusUpdate 项目状态变更记录，创建后不可修改
type ProjectStatusUpdate struct {
	Model
	ProjectID     uint     `gorm:"not null;index" json:"project"`                       // 所属项目
	Status        Status   `gorm:"type:varchar(20);not null" json:"status"`             // 本次变更后的状态
	ActionMessage string   `gorm:"type:varchar(255)" json:"action_message"`             // 操作说明，可选
	FileType      FileType `gorm:"type:varchar(30);default:application/pdf" json:"file_type"` // 声明的附件类型，仅作提示
	UpdatedByID   *uint    `json:"updated_by_id"`                                       // 操作人
	UpdatedBy     *User    `gorm:"foreignKey:UpdatedByID" json:"updated_by,omitempty"`

	Documents []SupportingDocument `gorm:"foreignKey:StatusUpdateID" json:"documents,omitempty"`
}
