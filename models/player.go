package models

// Player 玩家模型
// 其中名为 guild.name（默认 GUILDA）的一行是公会金库账户，
// 由 database.EnsureSchema 补种，任何代码路径都不会将其停用
type Player struct {
	ID        int64  `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Name      string `json:"name" gorm:"column:name;unique;not null"`
	Active    bool   `json:"active" gorm:"column:active"`
	CreatedAt string `json:"created_at" gorm:"column:created_at;not null"` // ISO-8601 UTC 文本
}

// TableName 设置表名
func (Player) TableName() string {
	return "players"
}

// PlayerBalance 余额聚合结果：saldo = 收入(Credito)总和 - 支出(Debito)总和
type PlayerBalance struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Saldo float64 `json:"saldo"`
}
