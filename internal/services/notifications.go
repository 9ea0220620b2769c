package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/harentsoaR/dental-booking/internal/models"
)

const textbeltEndpoint = "https://textbelt.com/text"

// Notifier is told about bookings once they are stored.
type Notifier interface {
	BookingCreated(user *models.User, dentist *models.Dentist, booking *models.Booking)
}

// SMSNotifier sends booking confirmations through the Textbelt API.
// Without an API key it only logs.
type SMSNotifier struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   *zap.Logger
}

func NewSMSNotifier(apiKey string, logger *zap.Logger) *SMSNotifier {
	return &SMSNotifier{
		endpoint: textbeltEndpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

// BookingCreated sends in a goroutine so it doesn't block the API response.
func (s *SMSNotifier) BookingCreated(user *models.User, dentist *models.Dentist, booking *models.Booking) {
	if s.apiKey == "" {
		s.logger.Debug("SMS disabled, no Textbelt key configured")
		return
	}
	if user == nil || user.Telephone == "" {
		s.logger.Info("SMS not sent: user has no telephone number", zap.String("booking_id", booking.ID.Hex()))
		return
	}

	msg := confirmationMessage(user, dentist, booking)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.send(ctx, user.Telephone, msg); err != nil {
			s.logger.Warn("failed to send booking SMS", zap.String("phone", user.Telephone), zap.Error(err))
			return
		}
		s.logger.Info("booking SMS sent", zap.String("phone", user.Telephone))
	}()
}

func confirmationMessage(user *models.User, dentist *models.Dentist, booking *models.Booking) string {
	return fmt.Sprintf(
		"Booking confirmed: %s with %s on %s.",
		user.Name,
		dentist.Name,
		booking.BookingDate.Format("Jan 2 at 3:04 PM"),
	)
}

func (s *SMSNotifier) send(ctx context.Context, phone, message string) error {
	body, err := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
		"key":     s.apiKey,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var result struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode textbelt response: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("textbelt: %s", result.Error)
	}
	return nil
}
