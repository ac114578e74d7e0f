// Package alerts emails low-stock warnings. Individual alerts go out as a
// product crosses its threshold; a summary loop drains the day's alert log
// from redis and mails an aggregate report.
package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/retail-manager/internal/models"
	"github.com/rogerio-castellano/retail-manager/internal/redissvc"
)

type Settings struct {
	From         string
	To           string
	SMTPServer   string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	AuthDisabled bool
}

var (
	settings Settings

	rdb *redis.Client
	ctx context.Context
)

func Configure(s Settings) {
	settings = s
}

func SetRedisService(rs *redissvc.RedisService) {
	rdb = rs.Rdb()
	ctx = rs.Ctx()
}

// Enabled reports whether SMTP settings are present; without them alerts
// are logged only.
func Enabled() bool {
	return settings.SMTPServer != "" && settings.From != "" && settings.To != ""
}

type lowStockEntry struct {
	ProductID int       `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Threshold int       `json:"threshold"`
	Time      time.Time `json:"time"`
}

const DailyLowStockLogKey = "alerts:lowstock:daily"

// NotifyLowStock records a low-stock event and sends an alert email
// fire-and-forget.
func NotifyLowStock(p models.Product) {
	log.Printf("⚠️ ALERT: Product %d (%s) at or below threshold! Qty=%d, Threshold=%d",
		p.ID, p.Name, p.Quantity, p.Threshold)

	logLowStockEvent(p)

	if !Enabled() {
		return
	}

	subject := fmt.Sprintf("⚠️ LOW STOCK: %s", p.Name)
	body := fmt.Sprintf("Product: %s (id %d)\nQuantity: %d\nThreshold: %d\nTime: %s",
		p.Name, p.ID, p.Quantity, p.Threshold, time.Now().Format(time.RFC3339))
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		settings.From, settings.To, subject, body)

	go func() {
		if err := sendMail([]byte(msg)); err != nil {
			log.Printf("Failed to send low-stock alert email: %v", err)
		}
	}()
}

func logLowStockEvent(p models.Product) {
	if rdb == nil {
		return
	}
	entry := lowStockEntry{
		ProductID: p.ID,
		Name:      p.Name,
		Quantity:  p.Quantity,
		Threshold: p.Threshold,
		Time:      time.Now(),
	}
	data, _ := json.Marshal(entry)
	_ = rdb.RPush(ctx, DailyLowStockLogKey, data).Err()
}

// StartDailySummary sleeps until end of day, sends the aggregate report and
// repeats every interval.
func StartDailySummary(interval time.Duration) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())
		if now.After(next) {
			next = next.Add(interval)
		}
		time.Sleep(time.Until(next))
		SendDailySummary()
	}
}

func SendDailySummary() {
	if rdb == nil {
		return
	}
	entries, err := rdb.LRange(ctx, DailyLowStockLogKey, 0, -1).Result()
	if err != nil || len(entries) == 0 {
		return
	}
	_ = rdb.Del(ctx, DailyLowStockLogKey).Err() // clear after reading

	var events []lowStockEntry
	worstByProduct := map[int]lowStockEntry{}
	for _, item := range entries {
		var entry lowStockEntry
		if err := json.Unmarshal([]byte(item), &entry); err == nil {
			events = append(events, entry)
			worst, seen := worstByProduct[entry.ProductID]
			if !seen || entry.Quantity < worst.Quantity {
				worstByProduct[entry.ProductID] = entry
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("<h2>📉 Daily Low-Stock Summary</h2>")
	sb.WriteString(fmt.Sprintf("<p>Alerts today: <strong>%d</strong></p>", len(events)))

	sb.WriteString("<h3>Products below threshold</h3><ul>")
	for _, entry := range worstByProduct {
		sb.WriteString(fmt.Sprintf("<li><b>%s</b>: %d left (threshold %d)</li>",
			entry.Name, entry.Quantity, entry.Threshold))
	}
	sb.WriteString("</ul>")

	sb.WriteString("<h3>Full log</h3><ul>")
	for _, entry := range events {
		sb.WriteString(fmt.Sprintf("<li>%s: qty %d at %s</li>",
			entry.Name, entry.Quantity, entry.Time.Format(time.RFC822)))
	}
	sb.WriteString("</ul>")

	if !Enabled() {
		log.Printf("low-stock summary: %d alerts today (SMTP not configured, skipping email)", len(events))
		return
	}

	msg := strings.Join([]string{
		"From: " + settings.From,
		"To: " + settings.To,
		"Subject: 📉 Daily Low-Stock Report",
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		sb.String(),
	}, "\r\n")

	go func() {
		if err := sendMail([]byte(msg)); err != nil {
			log.Printf("❌ Failed to send low-stock summary: %v", err)
		} else {
			log.Println("📬 Daily low-stock summary sent via SMTP.")
		}
	}()
}

func sendMail(msg []byte) error {
	addr := fmt.Sprintf("%s:%s", settings.SMTPServer, settings.SMTPPort)
	var auth smtp.Auth
	if !settings.AuthDisabled {
		auth = smtp.PlainAuth("", settings.SMTPUser, settings.SMTPPassword, settings.SMTPServer)
	}
	return smtp.SendMail(addr, auth, settings.From, []string{settings.To}, msg)
}
