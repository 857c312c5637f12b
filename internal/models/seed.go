package models

// Seed returns the initial aggregate used when nothing has been persisted
// yet: the demo patent, three usage projects and two accounts. Every call
// builds a fresh value, so callers can never share mutable state through
// two loads of an empty store.
func Seed() *AppData {
	return &AppData{
		CurrentUser: nil,
		Users: []User{
			{
				ID:          "admin",
				UserName:    "admin",
				Password:    "admin",
				CompanyName: "系统管理员",
				Credits:     0,
				Role:        RoleAdmin,
			},
			{
				ID:          "user1",
				UserName:    "tech_corp",
				Password:    "123",
				CompanyName: "未来科技股份有限公司",
				Credits:     1000,
				Role:        RoleUser,
			},
		},
		Projects: []Project{
			{ID: "p1", Name: "商业授权 - A类", Cost: 500},
			{ID: "p2", Name: "研发与实验使用", Cost: 200},
			{ID: "p3", Name: "教育展示用途", Cost: 50},
		},
		Certificates: []Certificate{},
		Config: PatentConfig{
			PatentName:    "高效太阳能光伏转换装置",
			PatentNo:      "CN-2024-98765432",
			BackgroundURL: "",
		},
	}
}
