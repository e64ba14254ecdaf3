package api

import (
	"errors"

	"guildledger/models"

	"gorm.io/gorm"
)

// ErrSplitNotFound 查询的分成单不存在（区别于存储层错误）
var ErrSplitNotFound = errors.New("split not found")

// splitListLimit 分成单列表最多返回的行数
const splitListLimit = 500

// fetchBalances 返回所有活跃玩家的净余额（贷方合计减借方合计，无流水时为 0）
// 排序：公会账户固定在首位，其余按余额降序、同余额按名字升序
// 停用的玩家完全不出现在结果里
func fetchBalances(db *gorm.DB, guildName string) ([]models.PlayerBalance, error) {
	var rows []models.PlayerBalance
	err := db.Raw(`
		SELECT p.id, p.name,
		       COALESCE(SUM(CASE WHEN t.ttype = ? THEN t.amount ELSE 0 END), 0) -
		       COALESCE(SUM(CASE WHEN t.ttype = ? THEN t.amount ELSE 0 END), 0) AS saldo
		FROM players p
		LEFT JOIN transactions t ON t.player_id = p.id
		WHERE p.active = 1
		GROUP BY p.id, p.name
		ORDER BY CASE WHEN p.name = ? THEN 0 ELSE 1 END, saldo DESC, p.name ASC`,
		models.TTypeCredit, models.TTypeDebit, guildName,
	).Scan(&rows).Error
	return rows, err
}

// fetchSplits 返回最近的分成单（按 id 降序，最多 splitListLimit 条），逐行归一化
func fetchSplits(db *gorm.DB) ([]models.Split, error) {
	var rows []models.SplitRow
	if err := db.Raw("SELECT * FROM splits ORDER BY id DESC LIMIT ?", splitListLimit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	splits := make([]models.Split, 0, len(rows))
	for _, row := range rows {
		splits = append(splits, row.Normalize())
	}
	return splits, nil
}

// fetchSplitDetail 返回归一化后的分成单和它名下的流水（联表带玩家名，金额降序）
// id 不存在时返回 ErrSplitNotFound
func fetchSplitDetail(db *gorm.DB, id int64) (models.Split, []models.SplitTransaction, error) {
	var row models.SplitRow
	result := db.Raw("SELECT * FROM splits WHERE id = ?", id).Scan(&row)
	if result.Error != nil {
		return models.Split{}, nil, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Split{}, nil, ErrSplitNotFound
	}

	var tx []models.SplitTransaction
	err := db.Raw(`
		SELECT t.id, p.name AS player_name, t.ttype, t.amount, t.category, t.note, t.created_at
		FROM transactions t
		JOIN players p ON p.id = t.player_id
		WHERE t.split_id = ?
		ORDER BY t.amount DESC`, id,
	).Scan(&tx).Error
	if err != nil {
		return models.Split{}, nil, err
	}
	return row.Normalize(), tx, nil
}
