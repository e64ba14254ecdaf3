package models

// 交易类型常量，表上有 CHECK 约束，只允许这两个字面量
const (
	// TTypeCredit 入账
	TTypeCredit = "Credito"
	// TTypeDebit 出账
	TTypeDebit = "Debito"
)

// Transaction 交易流水模型
// 归属于唯一一个玩家（随玩家级联删除）；split_id 为可空软引用，
// 删除分成单不会联动清理流水上的引用（历史遗留，见 DESIGN.md）
type Transaction struct {
	ID        int64   `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	PlayerID  int64   `json:"player_id" gorm:"column:player_id;not null"`
	TType     string  `json:"ttype" gorm:"column:ttype;not null"`
	Amount    float64 `json:"amount" gorm:"column:amount;not null"`
	Category  *string `json:"category" gorm:"column:category"`
	Note      *string `json:"note" gorm:"column:note"`
	SplitID   *int64  `json:"split_id" gorm:"column:split_id"`
	CreatedAt string  `json:"created_at" gorm:"column:created_at;not null"`
}

// TableName 设置表名
func (Transaction) TableName() string {
	return "transactions"
}

// SplitTransaction 分成单明细里的一条流水（联表带出玩家名）
type SplitTransaction struct {
	ID         int64   `json:"id"`
	PlayerName string  `json:"player_name"`
	TType      string  `json:"ttype"`
	Amount     float64 `json:"amount"`
	Category   *string `json:"category"`
	Note       *string `json:"note"`
	CreatedAt  string  `json:"created_at"`
}
