package utils

import (
	"decourse/config"
	courseModels "decourse/models/course"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// NotifyCertificateIssued posts an issued certificate to the configured
// webhook so downstream tooling (badge rendering, community announcements)
// can react. Failures are logged and dropped; issuance never depends on
// the webhook.
func NotifyCertificateIssued(cert *courseModels.Certificate) {
	webhookURL := config.AppConfig.CertificateWebhookURL
	if webhookURL == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)

	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"event":              "certificate.issued",
			"user_id":            cert.UserID,
			"user_name":          cert.UserName,
			"platform":           cert.Platform,
			"certificate_number": cert.CertificateNumber,
			"issued_at":          cert.IssuedAt,
		}).
		Post(webhookURL)
	if err != nil {
		log.Printf("[WEBHOOK] Certificate notification failed: %v", err)
		return
	}
	if resp.IsError() {
		log.Printf("[WEBHOOK] Certificate notification returned %d", resp.StatusCode())
	}
}
