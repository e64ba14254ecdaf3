package api

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"guildledger/database"
	"guildledger/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createSplit(t *testing.T, bruto int64, status string) int64 {
	t.Helper()
	res := database.DB.Exec(
		"INSERT INTO splits(bruto, status, created_at) VALUES(?, ?, ?)",
		bruto, status, "2025-03-01T00:00:00Z",
	)
	require.NoError(t, res.Error)

	var id int64
	require.NoError(t, database.DB.Raw("SELECT last_insert_rowid()").Scan(&id).Error)
	return id
}

func TestFetchSplits_NewestFirst(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	first := createSplit(t, 1000, "Vendendo")
	second := createSplit(t, 2000, "Pago")
	third := createSplit(t, 3000, "Vendendo")

	splits, err := fetchSplits(database.DB)
	require.NoError(t, err)

	require.Len(t, splits, 3)
	assert.Equal(t, third, splits[0].ID)
	assert.Equal(t, second, splits[1].ID)
	assert.Equal(t, first, splits[2].ID)
}

func TestFetchSplits_LimitedTo500(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	for i := 0; i < splitListLimit+20; i++ {
		createSplit(t, int64(i), "Vendendo")
	}

	splits, err := fetchSplits(database.DB)
	require.NoError(t, err)

	require.Len(t, splits, splitListLimit)
	// 严格按 id 降序，截掉的是最早的 20 条
	assert.Equal(t, int64(splitListLimit+20), splits[0].ID)
	assert.Equal(t, int64(21), splits[len(splits)-1].ID)
}

func TestFetchSplits_NormalizesLegacyRows(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	// 旧版本的 splits 表只有很少几列，重建一张旧表结构来模拟
	require.NoError(t, database.DB.Exec("DROP TABLE splits").Error)
	require.NoError(t, database.DB.Exec(`CREATE TABLE splits(
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		note TEXT,
		created_at TEXT NOT NULL
	)`).Error)
	require.NoError(t, database.DB.Exec(
		"INSERT INTO splits(note, created_at) VALUES(?, ?)", "venda antiga", "2023-01-01T00:00:00Z",
	).Error)

	splits, err := fetchSplits(database.DB)
	require.NoError(t, err)

	require.Len(t, splits, 1)
	s := splits[0]
	assert.Equal(t, int64(0), s.Bruto)
	assert.Equal(t, int64(0), s.Reparo)
	assert.True(t, s.CobrarTaxa)
	assert.Equal(t, 25.0, s.TaxaPct)
	assert.Equal(t, "JOGADORES", s.ReparoPayer)
	assert.Equal(t, "Vendendo", s.Status)
	assert.False(t, s.Approved)
	assert.Equal(t, "venda antiga", *s.Note)
}

func TestFetchSplitDetail_NotFound(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	_, _, err := fetchSplitDetail(database.DB, 999999)
	assert.ErrorIs(t, err, ErrSplitNotFound)
}

func TestFetchSplitDetail_TransactionsByAmountDesc(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	sid := createSplit(t, 9000, "Vendendo")
	other := createSplit(t, 100, "Vendendo")

	ana := createPlayer(t, "Ana", true)
	beto := createPlayer(t, "Beto", true)

	createTx(t, ana, models.TTypeCredit, 300, &sid)
	createTx(t, beto, models.TTypeCredit, 800, &sid)
	createTx(t, ana, models.TTypeDebit, 50, &sid)
	// 其它分成单的流水不应串场
	createTx(t, beto, models.TTypeCredit, 9999, &other)

	split, tx, err := fetchSplitDetail(database.DB, sid)
	require.NoError(t, err)

	assert.Equal(t, sid, split.ID)
	assert.Equal(t, int64(9000), split.Bruto)

	require.Len(t, tx, 3)
	assert.Equal(t, 800.0, tx[0].Amount)
	assert.Equal(t, "Beto", tx[0].PlayerName)
	assert.Equal(t, 300.0, tx[1].Amount)
	assert.Equal(t, 50.0, tx[2].Amount)
	assert.Equal(t, models.TTypeDebit, tx[2].TType)
}

func TestSplitHandler_List(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	createSplit(t, 1234567, "Vendendo")

	router := newTestRouter()
	router.GET("/splits", NewSplitHandler().List)

	req := httptest.NewRequest("GET", "/splits", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "1.234.567")
	assert.Contains(t, w.Body.String(), "Vendendo")
}

func TestSplitHandler_List_StorageFailure(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM splits").
		WillReturnError(errors.New("database is locked"))

	router := newTestRouter()
	router.GET("/splits", NewSplitHandler().List)

	req := httptest.NewRequest("GET", "/splits", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// 通用 500 页，不携带存储层错误文本
	assert.Equal(t, 500, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	assert.Contains(t, body, "Algo deu errado")
	assert.NotContains(t, body, "database is locked")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSplitHandler_Detail(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	sid := createSplit(t, 5000, "Pago")
	ana := createPlayer(t, "Ana", true)
	createTx(t, ana, models.TTypeCredit, 1250, &sid)

	router := newTestRouter()
	router.GET("/splits/:id", NewSplitHandler().Detail)

	req := httptest.NewRequest("GET", fmt.Sprintf("/splits/%d", sid), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "5.000")
	assert.Contains(t, body, "Ana")
	assert.Contains(t, body, "1.250")
}

func TestSplitHandler_Detail_NotFound(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	router := newTestRouter()
	router.GET("/splits/:id", NewSplitHandler().Detail)

	req := httptest.NewRequest("GET", "/splits/999999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	assert.Contains(t, w.Body.String(), "404")
}

func TestSplitHandler_Detail_NonNumericID(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	router := newTestRouter()
	router.GET("/splits/:id", NewSplitHandler().Detail)

	req := httptest.NewRequest("GET", "/splits/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
}
