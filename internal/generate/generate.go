package generate

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"explaindeck/internal/article"
)

const systemInstructions = "You are a meticulous Python 3.12+ expert. " +
	"Return a concise but thorough JSON object with keys: " +
	"title, summary, key_points (list), code_examples (list of objects with language and code), " +
	"version_notes (list), caveats (list). Use only valid JSON."

// Runner invokes the model with a prompt and returns its raw output.
type Runner interface {
	Run(ctx context.Context, model, prompt string, env []string) (string, error)
}

// OllamaRunner executes `ollama run <model>` with the prompt on stdin.
type OllamaRunner struct{}

func (OllamaRunner) Run(ctx context.Context, model, prompt string, env []string) (string, error) {
	cmd := exec.CommandContext(ctx, "ollama", "run", model)
	cmd.Stdin = strings.NewReader(prompt)
	cmd.Env = append(os.Environ(), env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ollama failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Generator produces one article record per Run call, walking the
// topic space with a cursor persisted in the state directory.
type Generator struct {
	Model       string
	Temperature string
	MaxTokens   int
	NumCtx      int
	OutputDir   string
	StateDir    string
	Runner      Runner
}

func (g *Generator) runner() Runner {
	if g.Runner != nil {
		return g.Runner
	}
	return OllamaRunner{}
}

func (g *Generator) indexPath() string {
	return filepath.Join(g.StateDir, "last_index.txt")
}

// NextIndex reads the persisted topic cursor, defaulting to 0 on any
// read or parse failure.
func (g *Generator) NextIndex() int {
	data, err := os.ReadFile(g.indexPath())
	if err != nil {
		return 0
	}
	idx, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0
	}
	return idx
}

func (g *Generator) writeIndex(idx int) error {
	if err := os.MkdirAll(g.StateDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(g.indexPath(), []byte(strconv.Itoa(idx)), 0o644)
}

func (g *Generator) env() []string {
	numCtx := g.NumCtx
	if numCtx <= 0 {
		numCtx = 4096
	}
	env := []string{
		"OLLAMA_NUM_CTX=" + strconv.Itoa(numCtx),
		"OLLAMA_TEMPERATURE=" + g.Temperature,
	}
	if g.MaxTokens > 0 {
		env = append(env, "OLLAMA_NUM_PREDICT="+strconv.Itoa(g.MaxTokens))
	}
	return env
}

// Run generates one record: picks the next topic, calls the model,
// extracts the structured payload leniently, writes the output file,
// and advances the cursor. The record is written even when the model
// output is not valid JSON; the raw response is always preserved.
func (g *Generator) Run(ctx context.Context) (string, error) {
	idx := g.NextIndex()
	topic := TopicForIndex(idx)
	prompt := Prompt(topic)
	now := time.Now().UTC().Truncate(time.Second)

	log.Info("generating", "index", idx, "topic", topic, "model", g.Model)

	fullPrompt := systemInstructions + "\n\nTOPIC:\n" + prompt

	raw, err := g.runner().Run(ctx, g.Model, fullPrompt, g.env())
	if err != nil {
		raw = fmt.Sprintf("ERROR calling ollama: %v", err)
		log.Warn("model call failed, recording error output", "err", err)
	}

	rec := article.Record{
		Topic:        topic,
		Model:        g.Model,
		TopicIndex:   idx,
		Prompt:       prompt,
		TimestampUTC: now,
		RawResponse:  raw,
		Parsed:       ExtractParsed(raw),
	}

	name := OutputName(now, idx, topic)
	data, err := article.Encode(rec)
	if err != nil {
		return "", fmt.Errorf("encoding record: %w", err)
	}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}
	path := filepath.Join(g.OutputDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing record: %w", err)
	}

	if err := g.writeIndex(idx + 1); err != nil {
		return "", fmt.Errorf("advancing topic cursor: %w", err)
	}

	log.Info("saved record", "file", name)
	return name, nil
}

// OutputName builds the stable record filename: a compact UTC
// timestamp, the zero-padded topic index, and a short hash of the
// topic text.
func OutputName(ts time.Time, idx int, topic string) string {
	h := sha256.Sum256([]byte(topic))
	short := fmt.Sprintf("%x", h)[:10]
	return fmt.Sprintf("%s__%012d_%s.json", ts.UTC().Format("20060102T150405Z"), idx, short)
}
