package sniffer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"posinsight/internal/core/model"
)

func TestDetectRolesHeaderAndDate(t *testing.T) {
	tests := []struct {
		name           string
		table          model.RawTable
		expectedHeader int
		expectedDate   int
	}{
		{
			name: "chinese header in first row",
			table: model.RawTable{
				{"發票號碼", "結帳時間", "金額"},
				{"AB123", "2025/9/1 下午 5:23:55", "120"},
			},
			expectedHeader: 0,
			expectedDate:   1,
		},
		{
			name: "english header",
			table: model.RawTable{
				{"Invoice", "Date", "Amount"},
				{"AB123", "2025/9/1", "120"},
			},
			expectedHeader: 0,
			expectedDate:   1,
		},
		{
			name: "header after preamble rows",
			table: model.RawTable{
				{"門市月報表"},
				{""},
				{"時間", "金額"},
				{"2025/9/1", "120"},
			},
			expectedHeader: 2,
			expectedDate:   0,
		},
		{
			name: "no header falls back to origin",
			table: model.RawTable{
				{"2025/9/1 下午 5:23:55", "120"},
				{"2025/9/2 上午 11:00:00", "80"},
			},
			expectedHeader: 0,
			expectedDate:   0,
		},
		{
			name:           "empty table falls back to origin",
			table:          model.RawTable{},
			expectedHeader: 0,
			expectedDate:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roles := DetectRoles(tt.table)
			assert.Equal(t, tt.expectedHeader, roles.HeaderRow)
			assert.Equal(t, tt.expectedDate, roles.DateColumn)
		})
	}
}

func TestDetectRolesRevenueColumn(t *testing.T) {
	t.Run("largest column sum wins", func(t *testing.T) {
		// colA sums to 500, colB to 12000, colC to 300.
		table := model.RawTable{
			{"時間", "服務費", "總計", "稅額"},
			{"2025/9/1", "200", "5000", "100"},
			{"2025/9/2", "150", "4000", "120"},
			{"2025/9/3", "150", "3000", "80"},
		}
		roles := DetectRoles(table)
		assert.Equal(t, 2, roles.RevenueColumn)
	})

	t.Run("tie keeps lowest column index", func(t *testing.T) {
		table := model.RawTable{
			{"時間", "a", "b"},
			{"2025/9/1", "100", "100"},
			{"2025/9/2", "100", "100"},
		}
		roles := DetectRoles(table)
		assert.Equal(t, 1, roles.RevenueColumn)
	})

	t.Run("identifier headers are skipped", func(t *testing.T) {
		// The invoice-number column has huge numeric values but must not
		// be picked.
		table := model.RawTable{
			{"時間", "發票號碼", "金額"},
			{"2025/9/1", "98765432", "120"},
			{"2025/9/2", "98765433", "85"},
		}
		roles := DetectRoles(table)
		assert.Equal(t, 2, roles.RevenueColumn)
	})

	t.Run("currency decorated values accumulate", func(t *testing.T) {
		table := model.RawTable{
			{"時間", "金額"},
			{"2025/9/1", "NT$1,200"},
			{"2025/9/2", "$800"},
		}
		roles := DetectRoles(table)
		assert.Equal(t, 1, roles.RevenueColumn)
	})

	t.Run("no numeric column yields -1", func(t *testing.T) {
		table := model.RawTable{
			{"時間", "備註"},
			{"2025/9/1", "內用"},
		}
		roles := DetectRoles(table)
		assert.Equal(t, -1, roles.RevenueColumn)
	})

	t.Run("negative values never counted", func(t *testing.T) {
		table := model.RawTable{
			{"時間", "折讓", "金額"},
			{"2025/9/1", "-9999", "120"},
			{"2025/9/2", "-9999", "90"},
		}
		roles := DetectRoles(table)
		assert.Equal(t, 2, roles.RevenueColumn)
	})
}

func TestDetectRolesStatusColumn(t *testing.T) {
	t.Run("issued token located", func(t *testing.T) {
		table := model.RawTable{
			{"時間", "金額", "狀態"},
			{"2025/9/1", "120", "已開立"},
			{"2025/9/2", "80", "已作廢"},
		}
		roles := DetectRoles(table)
		assert.Equal(t, 2, roles.StatusColumn)
	})

	t.Run("absent status yields -1", func(t *testing.T) {
		table := model.RawTable{
			{"時間", "金額"},
			{"2025/9/1", "120"},
		}
		roles := DetectRoles(table)
		assert.Equal(t, -1, roles.StatusColumn)
	})
}
