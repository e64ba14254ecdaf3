package models

// 分成单字段的默认值，也用于旧库行的读取时归一化
const (
	// SplitStatusSelling 默认状态：出售中
	SplitStatusSelling = "Vendendo"
	// DefaultReparoPayer 默认修理费承担方：玩家均摊
	DefaultReparoPayer = "JOGADORES"
	// DefaultTaxaPct 默认手续费百分比
	DefaultTaxaPct = 25.0
)

// Split 分成单（归一化后的视图）
// bruto/reparo/taxa_pct 是独立存储的字段，不从关联流水推导
type Split struct {
	ID          int64   `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Bruto       int64   `json:"bruto" gorm:"column:bruto"`
	Reparo      int64   `json:"reparo" gorm:"column:reparo"`
	CobrarTaxa  bool    `json:"cobrar_taxa" gorm:"column:cobrar_taxa"`
	TaxaPct     float64 `json:"taxa_pct" gorm:"column:taxa_pct"`
	ReparoPayer string  `json:"reparo_payer" gorm:"column:reparo_payer"`
	Note        *string `json:"note" gorm:"column:note"`
	CreatedAt   *string `json:"created_at" gorm:"column:created_at"`
	PulledBy    *string `json:"pulled_by" gorm:"column:pulled_by"`
	Status      string  `json:"status" gorm:"column:status"`
	Approved    bool    `json:"approved" gorm:"column:approved"`
}

// TableName 设置表名
func (Split) TableName() string {
	return "splits"
}

// SplitRow 分成单原始行，所有可能缺失的字段都用指针承接，
// 以兼容缺列/存 NULL 的旧库
type SplitRow struct {
	ID          int64    `gorm:"column:id"`
	Bruto       *int64   `gorm:"column:bruto"`
	Reparo      *int64   `gorm:"column:reparo"`
	CobrarTaxa  *bool    `gorm:"column:cobrar_taxa"`
	TaxaPct     *float64 `gorm:"column:taxa_pct"`
	ReparoPayer *string  `gorm:"column:reparo_payer"`
	Note        *string  `gorm:"column:note"`
	CreatedAt   *string  `gorm:"column:created_at"`
	PulledBy    *string  `gorm:"column:pulled_by"`
	Status      *string  `gorm:"column:status"`
	Approved    *bool    `gorm:"column:approved"`
}

// Normalize 把原始行补全成带默认值的分成单
// 纯函数，幂等：对已归一化的行再次归一化结果不变
// note/created_at/pulled_by 原样透传，允许为 NULL
func (r SplitRow) Normalize() Split {
	s := Split{
		ID:          r.ID,
		CobrarTaxa:  true,
		TaxaPct:     DefaultTaxaPct,
		ReparoPayer: DefaultReparoPayer,
		Note:        r.Note,
		CreatedAt:   r.CreatedAt,
		PulledBy:    r.PulledBy,
		Status:      SplitStatusSelling,
	}
	if r.Bruto != nil {
		s.Bruto = *r.Bruto
	}
	if r.Reparo != nil {
		s.Reparo = *r.Reparo
	}
	if r.CobrarTaxa != nil {
		s.CobrarTaxa = *r.CobrarTaxa
	}
	if r.TaxaPct != nil {
		s.TaxaPct = *r.TaxaPct
	}
	if r.ReparoPayer != nil {
		s.ReparoPayer = *r.ReparoPayer
	}
	if r.Status != nil {
		s.Status = *r.Status
	}
	if r.Approved != nil {
		s.Approved = *r.Approved
	}
	return s
}

// Row 把归一化后的分成单还原成原始行形式，主要供归一化幂等性测试使用
func (s Split) Row() SplitRow {
	return SplitRow{
		ID:          s.ID,
		Bruto:       &s.Bruto,
		Reparo:      &s.Reparo,
		CobrarTaxa:  &s.CobrarTaxa,
		TaxaPct:     &s.TaxaPct,
		ReparoPayer: &s.ReparoPayer,
		Note:        s.Note,
		CreatedAt:   s.CreatedAt,
		PulledBy:    s.PulledBy,
		Status:      &s.Status,
		Approved:    &s.Approved,
	}
}
