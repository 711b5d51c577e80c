// Package upstream is the HTTP adapter to the learning-platform API. It is
// the only place where transport failures and non-2xx responses are turned
// into the typed error taxonomy; nothing downstream inspects status codes or
// message strings.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bourgeon/platform-gateway/internal/api/metrics"
	"github.com/bourgeon/platform-gateway/internal/core/domain"
	"github.com/bourgeon/platform-gateway/internal/core/ports"
)

const defaultTimeout = 30 * time.Second

const msgInvalidResponse = "Réponse invalide du serveur"

// Client talks to the platform API with a uniform timeout on every call.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     zerolog.Logger
}

// New builds a Client for the given base URL. A default timeout is applied
// when none is provided.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		log:     log,
	}
}

// ── AuthAPI ───────────────────────────────────────────────────────────────────

func (c *Client) Login(ctx context.Context, phonenumber, password string) (*ports.TokenGrant, error) {
	var grant ports.TokenGrant
	body := map[string]string{"phonenumber": phonenumber, "password": password}
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", "", body, &grant); err != nil {
		return nil, err
	}
	return &grant, nil
}

func (c *Client) RequestOTP(ctx context.Context, flow domain.WizardFlow, phonenumber string) (*ports.OTPIssued, error) {
	request, _, _ := otpPaths(flow)
	var issued ports.OTPIssued
	body := map[string]string{"phonenumber": phonenumber}
	if err := c.do(ctx, "request_otp", http.MethodPost, request, "", body, &issued); err != nil {
		return nil, err
	}
	return &issued, nil
}

func (c *Client) VerifyOTP(ctx context.Context, flow domain.WizardFlow, phonenumber, otp string) (*ports.OTPVerified, error) {
	_, verify, _ := otpPaths(flow)
	var verified ports.OTPVerified
	body := map[string]string{"phonenumber": phonenumber, "otp": otp}
	if err := c.do(ctx, "verify_otp", http.MethodPost, verify, "", body, &verified); err != nil {
		return nil, err
	}
	return &verified, nil
}

func (c *Client) ResendOTP(ctx context.Context, flow domain.WizardFlow, phonenumber string) (*ports.OTPIssued, error) {
	_, _, resend := otpPaths(flow)
	var issued ports.OTPIssued
	body := map[string]string{"phonenumber": phonenumber}
	if err := c.do(ctx, "resend_otp", http.MethodPost, resend, "", body, &issued); err != nil {
		return nil, err
	}
	return &issued, nil
}

func (c *Client) Register(ctx context.Context, input ports.RegisterInput) (*ports.RegisterResult, error) {
	var result ports.RegisterResult
	body := map[string]string{
		"otpToken":        input.OtpToken,
		"phonenumber":     input.Phonenumber,
		"firstname":       input.Firstname,
		"lastname":        input.Lastname,
		"password":        input.Password,
		"confirmPassword": input.ConfirmPassword,
	}
	if err := c.do(ctx, "register", http.MethodPost, "/auth/register", "", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ResetPassword(ctx context.Context, input ports.ResetPasswordInput) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	body := map[string]string{
		"otpToken":        input.OtpToken,
		"phonenumber":     input.Phonenumber,
		"newPassword":     input.NewPassword,
		"confirmPassword": input.ConfirmPassword,
	}
	if err := c.do(ctx, "reset_password", http.MethodPost, "/auth/forgotPassword/reset", "", body, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) Profile(ctx context.Context, accessToken string) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := c.do(ctx, "profile", http.MethodGet, "/auth/me", accessToken, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (*ports.TokenGrant, error) {
	var grant ports.TokenGrant
	body := map[string]string{"refreshToken": refreshToken}
	if err := c.do(ctx, "refresh", http.MethodPost, "/auth/refresh", "", body, &grant); err != nil {
		return nil, err
	}
	return &grant, nil
}

// otpPaths selects the endpoint family for a flow. The forgotPassword family
// mirrors the registration one route for route.
func otpPaths(flow domain.WizardFlow) (request, verify, resend string) {
	if flow == domain.FlowPasswordReset {
		return "/auth/forgotPassword/request-otp",
			"/auth/forgotPassword/verify-otp",
			"/auth/forgotPassword/resend-otp"
	}
	return "/auth/request-otp", "/auth/verify-otp", "/auth/resend-otp"
}

// ── CatalogAPI ────────────────────────────────────────────────────────────────

func (c *Client) Subjects(ctx context.Context, accessToken string) ([]domain.Subject, error) {
	var dtos []subjectDTO
	if err := c.do(ctx, "subjects", http.MethodGet, "/subject/findAll", accessToken, nil, &dtos); err != nil {
		return nil, err
	}
	return mapSubjects(dtos), nil
}

func (c *Client) SubjectsByType(ctx context.Context, accessToken string, t domain.SubjectType) ([]domain.Subject, error) {
	var dtos []subjectDTO
	path := "/subject/getByType/" + string(t)
	if err := c.do(ctx, "subjects_by_type", http.MethodGet, path, accessToken, nil, &dtos); err != nil {
		return nil, err
	}
	return mapSubjects(dtos), nil
}

func (c *Client) Questions(ctx context.Context, accessToken, subjectID string) ([]domain.Question, error) {
	var dtos []questionDTO
	path := "/question/questions/" + subjectID
	if err := c.do(ctx, "questions", http.MethodGet, path, accessToken, nil, &dtos); err != nil {
		return nil, err
	}
	return mapQuestions(dtos), nil
}

func (c *Client) CreateSubject(ctx context.Context, accessToken string, input ports.CreateSubjectInput) (*domain.Subject, error) {
	var dto subjectDTO
	body := map[string]string{
		"type":     string(input.Type),
		"title":    input.Title,
		"filePath": input.FilePath,
		"mimeType": input.MimeType,
	}
	if err := c.do(ctx, "create_subject", http.MethodPost, "/subject/create-subject", accessToken, body, &dto); err != nil {
		return nil, err
	}
	subject := dto.toDomain()
	return &subject, nil
}

// ── SubscriptionAPI ───────────────────────────────────────────────────────────

func (c *Client) Tarifs(ctx context.Context, accessToken string) ([]domain.Tarif, error) {
	var dtos []tarifDTO
	if err := c.do(ctx, "tarifs", http.MethodGet, "/tarifSubscription/findAll", accessToken, nil, &dtos); err != nil {
		return nil, err
	}
	return mapTarifs(dtos), nil
}

func (c *Client) UserSubscriptions(ctx context.Context, accessToken, userID string) ([]domain.Subscription, error) {
	var dtos []subscriptionDTO
	path := "/subscription/findByUser/" + userID
	if err := c.do(ctx, "user_subscriptions", http.MethodGet, path, accessToken, nil, &dtos); err != nil {
		return nil, err
	}
	return mapSubscriptions(dtos), nil
}

func (c *Client) CreateSubscription(ctx context.Context, accessToken string, input ports.CreateSubscriptionInput) (*domain.Subscription, error) {
	var dto subscriptionDTO
	body := map[string]string{
		"userId":      input.UserID,
		"type":        string(input.Type),
		"phoneNumber": input.PhoneNumber,
	}
	if err := c.do(ctx, "create_subscription", http.MethodPost, "/subscription/create-subscription", accessToken, body, &dto); err != nil {
		return nil, err
	}
	sub := dto.toDomain()
	return &sub, nil
}

func (c *Client) CancelSubscription(ctx context.Context, accessToken, subscriptionID string) error {
	path := "/subscription/delete-subscription/" + subscriptionID
	return c.do(ctx, "cancel_subscription", http.MethodDelete, path, accessToken, nil, nil)
}

func (c *Client) SimulatePayment(ctx context.Context, accessToken string, amount float64, phoneNumber string) (*domain.PaymentResult, error) {
	var result domain.PaymentResult
	body := map[string]any{"amount": amount, "phoneNumber": phoneNumber}
	if err := c.do(ctx, "simulate_payment", http.MethodPost, "/subscription/simulate", accessToken, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) CreateTarif(ctx context.Context, accessToken string, input ports.TarifInput) (*domain.Tarif, error) {
	var dto tarifDTO
	if err := c.do(ctx, "create_tarif", http.MethodPost, "/tarifSubscription/create-tarif", accessToken, tarifBody(input), &dto); err != nil {
		return nil, err
	}
	tarif := dto.toDomain()
	return &tarif, nil
}

func (c *Client) UpdateTarif(ctx context.Context, accessToken, tarifID string, input ports.TarifInput) (*domain.Tarif, error) {
	var dto tarifDTO
	path := "/tarifSubscription/update-tarif/" + tarifID
	if err := c.do(ctx, "update_tarif", http.MethodPut, path, accessToken, tarifBody(input), &dto); err != nil {
		return nil, err
	}
	tarif := dto.toDomain()
	return &tarif, nil
}

func (c *Client) DeleteTarif(ctx context.Context, accessToken, tarifID string) error {
	path := "/tarifSubscription/delete-tarif/" + tarifID
	return c.do(ctx, "delete_tarif", http.MethodDelete, path, accessToken, nil, nil)
}

func tarifBody(input ports.TarifInput) map[string]any {
	return map[string]any{
		"type":             string(input.Type),
		"price":            input.Price,
		"durationInMonths": input.DurationInMonths,
	}
}

// ── Transport core ────────────────────────────────────────────────────────────

// do performs one round trip and records metrics. endpoint is the logical
// name used for metric labels.
func (c *Client) do(ctx context.Context, endpoint, method, path, token string, body, out any) error {
	start := time.Now()
	err := c.roundTrip(ctx, method, path, token, body, out)
	metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, outcomeLabel(err)).Inc()
	if err != nil {
		c.log.Debug().Err(err).Str("endpoint", endpoint).Str("path", path).Msg("upstream call failed")
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &domain.NetworkError{Timeout: isTimeout(err), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.NetworkError{Timeout: isTimeout(err), Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// A 401 on an authenticated call means the token pair is dead.
		// Unauthenticated calls (login, refresh, OTP) keep their own message.
		if resp.StatusCode == http.StatusUnauthorized && token != "" {
			return domain.ErrSessionExpired
		}
		return &domain.APIError{
			Status:  resp.StatusCode,
			Message: errorMessage(resp, raw),
		}
	}

	if out == nil {
		return nil
	}
	return decodeBody(resp.StatusCode, raw, out)
}

// errorMessage extracts the user-facing text from an error response:
// "message", then "error", then a synthesized status line.
func errorMessage(resp *http.Response, raw []byte) string {
	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		var env envelope
		if err := json.Unmarshal(raw, &env); err == nil {
			if env.Message != "" {
				return env.Message
			}
			if env.Error != "" {
				return env.Error
			}
		}
	}
	return fmt.Sprintf("Erreur %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}

// envelope is the {success, code, message, data} wrapper some upstream
// endpoints use. Data stays raw so the caller decides the concrete shape.
type envelope struct {
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// decodeBody unmarshals a 2xx body into out, unwrapping the data envelope
// when present. Malformed JSON is reported as a generic invalid-response
// error, never as a raw parse failure.
func decodeBody(status int, raw []byte, out any) error {
	invalid := &domain.APIError{Status: status, Message: msgInvalidResponse}

	if len(bytes.TrimSpace(raw)) == 0 {
		return invalid
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return invalid
		}
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return invalid
	}
	return nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

func outcomeLabel(err error) string {
	if err == nil {
		return "ok"
	}
	var netErr *domain.NetworkError
	if errors.As(err, &netErr) {
		if netErr.Timeout {
			return "timeout"
		}
		return "network_error"
	}
	return "api_error"
}
