package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pos-service/config"
	"pos-service/internal/models"
	"pos-service/internal/util"

	"go.uber.org/zap"
)

// Canned strings returned when the AI call fails or comes back empty. The
// register must never block on the AI, so these are the whole error handling
// story: callers always get a usable string.
const (
	FallbackReceiptNote = "Terima kasih! Jangan lupa datang kembali."
	EmptyReceiptNote    = "Terima kasih telah berbelanja!"
	FallbackInsight     = "Maaf, sistem AI sedang sibuk. Coba lagi nanti."
	EmptyInsight        = "Data penjualan belum cukup untuk analisis mendalam."
)

// insightSampleSize caps how many recent transactions go into the prompt.
const insightSampleSize = 10

// Client calls the Gemini generateContent REST API to produce receipt notes
// and business insights. Every public method swallows its own failures and
// returns a fallback string instead of an error.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	logger     *zap.Logger
}

// NewClient creates an AI client. The configured timeout bounds every call
// on top of whatever deadline the caller's context carries.
func NewClient(cfg config.AIConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		logger:     util.NamedLogger("ai"),
	}
}

// ReceiptNote produces a short friendly message for the customer's receipt.
func (c *Client) ReceiptNote(ctx context.Context, lines []models.CartLine, grandTotal int64) string {
	items := make([]string, len(lines))
	for i, line := range lines {
		items[i] = fmt.Sprintf("%dx %s", line.Quantity, line.ProductName)
	}

	prompt := fmt.Sprintf(
		"Buatlah pesan singkat, ramah, dan lucu (maksimal 2 kalimat) untuk struk pembelian pelanggan. "+
			"Pelanggan membeli: %s. Total belanja: Rp%d. "+
			"Gunakan Bahasa Indonesia yang gaul tapi sopan.",
		strings.Join(items, ", "), grandTotal)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		c.logger.Warn("Receipt note generation failed", zap.Error(err))
		util.AIFallbacksTotal.WithLabelValues("receipt_note").Inc()
		return FallbackReceiptNote
	}
	if text == "" {
		return EmptyReceiptNote
	}
	return text
}

// BusinessInsight analyzes recent sales and returns a short advisory summary.
func (c *Client) BusinessInsight(ctx context.Context, txs []models.Transaction) string {
	type sample struct {
		Date  string `json:"date"`
		Total int64  `json:"total"`
	}

	var revenue int64
	for _, tx := range txs {
		revenue += tx.GrandTotal
	}

	recent := txs
	if len(recent) > insightSampleSize {
		recent = recent[:insightSampleSize]
	}
	samples := make([]sample, len(recent))
	for i, tx := range recent {
		samples[i] = sample{Date: tx.CreatedAt.Format("2006-01-02"), Total: tx.GrandTotal}
	}
	sampleJSON, _ := json.Marshal(samples)

	prompt := fmt.Sprintf(
		"Bertindaklah sebagai konsultan bisnis kuliner senior. "+
			"Berikut adalah data penjualan ringkas: total pendapatan tercatat Rp%d, "+
			"%d transaksi terakhir (sample): %s. "+
			"Berikan 3 poin analisis singkat dan saran strategis untuk meningkatkan penjualan "+
			"dalam Bahasa Indonesia. Format output dengan bullet points. Jangan gunakan markdown bold (**).",
		revenue, len(samples), sampleJSON)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		c.logger.Warn("Business insight generation failed", zap.Error(err))
		util.AIFallbacksTotal.WithLabelValues("insight").Inc()
		return FallbackInsight
	}
	if text == "" {
		return EmptyInsight
	}
	return text
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("no API key configured")
	}

	start := time.Now()
	defer func() {
		util.AIRequestLatency.Observe(time.Since(start).Seconds())
	}()

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return strings.TrimSpace(decoded.Candidates[0].Content.Parts[0].Text), nil
}
