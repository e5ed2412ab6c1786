package bulk

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Columnas fijas de exportación; la importación exige al menos esa cantidad por fila.
var (
	ProductHeader = []string{"ID", "Name", "SKU", "Price", "Quantity", "MinStockLevel", "Category", "Status", "SupplierId", "CreatedAt", "UpdatedAt"}
	OrderHeader   = []string{"OrderID", "ProductId", "SupplierId", "Quantity", "TotalPrice", "CreatedAt", "Status"}
)

const (
	timeLayout = time.RFC3339Nano
	notAvail   = "N/A"
)

// isNull trata "" y "N/A" como ausencia de valor.
func isNull(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, notAvail)
}

func formatInt64Ptr(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func formatIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

func parseOptInt(s string) (*int, error) {
	if isNull(s) {
		return nil, nil
	}
	v, err := parseInt(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

// parseTime devuelve def cuando el campo es nulo.
func parseTime(s string, def time.Time) (time.Time, error) {
	if isNull(s) {
		return def, nil
	}
	return time.Parse(timeLayout, strings.TrimSpace(s))
}

func parseOptTime(s string) (*time.Time, error) {
	if isNull(s) {
		return nil, nil
	}
	t, err := time.Parse(timeLayout, strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	return &t, nil
}
