// Package sheets forwards completed transactions to a Google Apps
// Script webhook that appends them to a spreadsheet. The forwarding is
// one-way: the response body is never parsed and failures are only
// logged, so a broken webhook can never fail a checkout.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"washpos/backend/internal/domain"
)

type Logger struct {
	webhookURL string
	httpClient *http.Client
}

func New(webhookURL string) *Logger {
	return &Logger{
		webhookURL: strings.TrimSpace(webhookURL),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled reports whether a webhook URL is configured.
func (l *Logger) Enabled() bool {
	return l != nil && l.webhookURL != ""
}

// record is the flattened row shape the Apps Script expects.
type record struct {
	ID            string `json:"id"`
	Timestamp     string `json:"timestamp"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Items         string `json:"items"`
	Total         string `json:"total"`
	PaymentMethod string `json:"paymentMethod"`
}

// Log posts one transaction to the webhook. Errors never propagate.
func (l *Logger) Log(ctx context.Context, tx domain.Transaction) {
	if !l.Enabled() {
		return
	}

	payload, err := json.Marshal(record{
		ID:            tx.ID,
		Timestamp:     tx.Timestamp.UTC().Format(time.RFC3339),
		Date:          tx.Timestamp.Format("2006-01-02"),
		Time:          tx.Timestamp.Format("15:04:05"),
		Items:         ItemSummary(tx.Items),
		Total:         FormatAmount(tx.TotalCents),
		PaymentMethod: string(tx.PaymentMethod),
	})
	if err != nil {
		log.Printf("[sheets] marshal transaction %s: %v", tx.ID, err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.webhookURL, bytes.NewReader(payload))
	if err != nil {
		log.Printf("[sheets] build request for transaction %s: %v", tx.ID, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		log.Printf("[sheets] post transaction %s: %v", tx.ID, err)
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[sheets] post transaction %s: unexpected status %d", tx.ID, resp.StatusCode)
	}
}

// ItemSummary renders line items as "2x Size M/L (Sedan/SUV), 1x ...".
func ItemSummary(items []domain.CartItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%dx %s", item.Quantity, item.Product.Name))
	}
	return strings.Join(parts, ", ")
}

// FormatAmount renders satang as a two-decimal baht string.
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
