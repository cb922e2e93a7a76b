package model

// ProjectCategory 项目分类，名称统一小写保存并唯一
type ProjectCategory struct {
	Model
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:varchar(255)" json:"description"`
}
