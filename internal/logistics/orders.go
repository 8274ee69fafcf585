package logistics

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"
)

// Deadline statuses.
const (
	StatusLate   = "Atrasado"
	StatusOnTime = "No Prazo"
)

const timestampLayout = time.DateTime

// Order is a delivered order with its engineered lead time.
type Order struct {
	ID             string
	Status         string
	Purchased      time.Time
	Delivered      time.Time
	Estimated      time.Time
	LeadDays       int
	Late           bool
	DeadlineStatus string
}

// Year is the purchase year.
func (o Order) Year() int { return o.Purchased.Year() }

var requiredColumns = []string{
	"order_id",
	"order_status",
	"order_purchase_timestamp",
	"order_delivered_customer_date",
	"order_estimated_delivery_date",
}

// ParseOrders reads the orders CSV and keeps delivered orders that have both a
// purchase and a delivery timestamp. Unparseable timestamps count as missing.
func ParseOrders(r io.Reader) ([]Order, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty csv")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	field := func(rec []string, name string) string {
		i := col[name]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var out []Order
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		purchased, okP := parseTimestamp(field(rec, "order_purchase_timestamp"))
		delivered, okD := parseTimestamp(field(rec, "order_delivered_customer_date"))
		if !okP || !okD {
			continue
		}
		if field(rec, "order_status") != "delivered" {
			continue
		}
		estimated, okE := parseTimestamp(field(rec, "order_estimated_delivery_date"))
		o := Order{
			ID:        field(rec, "order_id"),
			Status:    "delivered",
			Purchased: purchased,
			Delivered: delivered,
			Estimated: estimated,
			LeadDays:  LeadDays(purchased, delivered),
			Late:      okE && delivered.After(estimated),
		}
		o.DeadlineStatus = StatusOnTime
		if o.Late {
			o.DeadlineStatus = StatusLate
		}
		out = append(out, o)
	}
	return out, nil
}

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// LeadDays is the number of whole days between purchase and delivery, rounded down.
func LeadDays(purchased, delivered time.Time) int {
	return int(math.Floor(delivered.Sub(purchased).Hours() / 24))
}
