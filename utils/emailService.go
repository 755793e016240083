package utils

import (
	"decourse/config"
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	if from == "" || password == "" {
		fmt.Println("Email sender not configured, skipping:", subject)
		return nil
	}

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Design Engineering Course <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper shared by every notification email
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #0A0A0A; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #0A0A0A; line-height: 1.6; }
			.content h2 { color: #0A0A0A; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #2563EB; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #2563EB; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>DESIGN ENGINEERING COURSE</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Design Engineering Course. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendCertificateEmail congratulates a user on a freshly issued certificate
func SendCertificateEmail(email, name, platform, certificateNumber string) {
	subject := "Your Design Engineering Certificate is Ready!"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations! You have completed the design, engineering, and convergence tracks for <strong>%s</strong>.</p>
		<div class="info-box">
			<strong>Certificate number:</strong> %s
		</div>
		<p>Your certificate is available on your dashboard. Share it proudly.</p>
	`, name, platform, certificateNumber)

	go SendEmail([]string{email}, subject, getEmailTemplate("Certificate Issued", body))
}

// SendTemporaryAccessEmail confirms a redeemed access code
func SendTemporaryAccessEmail(email, name string, expiresAt time.Time) {
	subject := "Full Course Access Unlocked"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your access code has been redeemed. You now have <strong>full access</strong> to every track and platform.</p>
		<div class="info-box">
			<strong>Access expires:</strong> %s
		</div>
		<p>Make the most of it!</p>
	`, name, expiresAt.Format("January 2, 2006"))

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome In!", body))
}
