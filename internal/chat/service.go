package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/voctools/voc-console/internal/ai"
	"github.com/voctools/voc-console/internal/prompt"
	"github.com/voctools/voc-console/internal/voc"
)

type service struct {
	ai  ai.AI
	voc Querier
	log zerolog.Logger
	now func() time.Time
}

func NewService(aiClient ai.AI, querier Querier, log zerolog.Logger) Service {
	return &service{
		ai:  aiClient,
		voc: querier,
		log: log,
		now: time.Now,
	}
}

func (s *service) Handle(ctx context.Context, mode voc.Mode, content, promptOverride string) (voc.Reply, error) {
	systemPrompt := promptOverride
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = prompt.Build(mode, s.now())
	}

	raw, err := s.ai.GetReply(ctx, systemPrompt, content)
	if err != nil {
		return voc.Reply{}, fmt.Errorf("ai reply: %w", err)
	}

	if mode == voc.ModeGeneral {
		return voc.Reply{Kind: voc.ReplyText, Text: raw}, nil
	}

	p, err := parsePlan(raw)
	if err != nil {
		s.log.Warn().Str("mode", string(mode)).Err(err).Msg("bad query plan")
		return voc.Reply{}, err
	}

	items, err := s.voc.List(ctx, p.Params)
	if err != nil {
		return voc.Reply{}, fmt.Errorf("execute plan: %w", err)
	}

	s.log.Info().
		Str("mode", string(mode)).
		Int("params", len(p.Params)).
		Int("items", len(items)).
		Msg("query executed")

	return voc.Reply{Kind: voc.ReplyTicketList, Items: items}, nil
}

// plan is the validated call the model emitted for a query mode.
type plan struct {
	Method   string
	Endpoint string
	Params   map[string]string
}

// rawPlan is the wire shape before validation.
type rawPlan struct {
	Method   string         `json:"method"`
	Endpoint string         `json:"endpoint"`
	Params   map[string]any `json:"params"`
	Payload  any            `json:"payload"`
}

var allowedParams = map[string]bool{
	"status":     true,
	"urgency":    true,
	"voc_type":   true,
	"channel":    true,
	"start_date": true,
	"end_date":   true,
	"keyword":    true,
	"limit":      true,
}

// parsePlan decodes and validates the model's plan. Only GET against
// /voc-data with whitelisted params is accepted; anything else is
// rejected with the raw output echoed, truncated, for diagnosis.
func parsePlan(raw string) (plan, error) {
	cleaned := stripFences(raw)

	var rp rawPlan
	if err := json.Unmarshal([]byte(cleaned), &rp); err != nil {
		return plan{}, fmt.Errorf("plan is not valid JSON: %w (raw=%s)", err, short(raw))
	}

	if !strings.EqualFold(rp.Method, "GET") {
		return plan{}, fmt.Errorf("plan method %q is not allowed", rp.Method)
	}
	if rp.Endpoint != "/voc-data" {
		return plan{}, fmt.Errorf("plan endpoint %q is not allowed", rp.Endpoint)
	}

	p := plan{
		Method:   "GET",
		Endpoint: rp.Endpoint,
		Params:   make(map[string]string, len(rp.Params)),
	}
	for key, value := range rp.Params {
		if !allowedParams[key] {
			return plan{}, fmt.Errorf("plan param %q is not allowed", key)
		}
		switch v := value.(type) {
		case string:
			p.Params[key] = v
		case float64:
			p.Params[key] = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			return plan{}, fmt.Errorf("plan param %q has unsupported value", key)
		}
	}

	return p, nil
}

// stripFences removes a markdown code fence the model sometimes wraps
// its JSON in.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func short(s string) string {
	if len(s) > 180 {
		return s[:180] + "..."
	}
	return s
}
