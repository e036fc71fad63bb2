// Package console runs the draft loop over a line-oriented terminal.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/riskibarqy/draft-assistant/internal/domain/draft"
	"github.com/riskibarqy/draft-assistant/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	headerLine        = "--- Draft Assistant ---"
	recommendationsHd = "Top Recommendations:"
	invalidChoiceLine = "Invalid choice. Try again."
	rosterHd          = "Current Roster:"
	exhaustedLine     = "All players drafted."
	endedLine         = "Draft ended."
	unavailableLine   = "Player data is unavailable right now."
)

// Console implements usecase.DraftPrompter on a reader/writer pair,
// normally stdin and stdout.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

var _ usecase.DraftPrompter = (*Console)(nil)

func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (c *Console) ShowRecommendations(_ context.Context, _ int, recs []draft.Recommendation) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	writeLine(buf, "")
	writeLine(buf, headerLine)
	writeLine(buf, "")
	writeLine(buf, recommendationsHd)
	for i, rec := range recs {
		_, _ = buf.WriteString(strconv.Itoa(i + 1))
		_, _ = buf.WriteString(". ")
		_, _ = buf.WriteString(rec.Player.Name)
		_, _ = buf.WriteString(" (")
		_, _ = buf.WriteString(string(rec.Player.Position))
		_, _ = buf.WriteString(") - Score: ")
		_, _ = buf.WriteString(strconv.FormatFloat(rec.Score, 'f', 2, 64))
		_ = buf.WriteByte('\n')
	}

	return c.flush(buf)
}

// ReadSelection prompts for one answer and returns the raw line. End of
// input with nothing typed is reported as io.EOF.
func (c *Console) ReadSelection(ctx context.Context, offered int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	prompt := fmt.Sprintf("Select player to draft (1-%d), or 0 to quit: ", offered)
	if _, err := io.WriteString(c.out, prompt); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}

	line, err := c.readLine(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) != "" {
			return line, nil
		}
		return "", err
	}
	return line, nil
}

type readResult struct {
	line string
	err  error
}

// readLine gives up on cancellation; the pending read is abandoned and the
// console must not be reused afterwards.
func (c *Console) readLine(ctx context.Context) (string, error) {
	done := make(chan readResult, 1)
	go func() {
		line, err := c.in.ReadString('\n')
		done <- readResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.line, res.err
	}
}

func (c *Console) ShowInvalidSelection(_ context.Context, err error) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(invalidChoiceLine)
	if reason := selectionReason(err); reason != "" {
		_, _ = buf.WriteString(" (")
		_, _ = buf.WriteString(reason)
		_ = buf.WriteByte(')')
	}
	_ = buf.WriteByte('\n')

	return c.flush(buf)
}

func (c *Console) ShowPick(_ context.Context, pick draft.Pick, progress []draft.PositionProgress) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	writeLine(buf, "")
	writeLine(buf, "You drafted: "+pick.Player.String())
	writeRoster(buf, progress)

	return c.flush(buf)
}

func (c *Console) ShowFinished(_ context.Context, summary usecase.DraftSummary) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	writeLine(buf, "")
	if summary.Reason == draft.ReasonPoolExhausted {
		writeLine(buf, headerLine)
		writeLine(buf, "")
		writeLine(buf, exhaustedLine)
	} else {
		writeLine(buf, endedLine)
	}

	if len(summary.Picks) > 0 {
		writeLine(buf, "Your picks:")
		for _, pick := range summary.Picks {
			writeLine(buf, fmt.Sprintf("Round %d: %s", pick.Round, pick.Player.String()))
		}
		writeRoster(buf, summary.Progress)
	}

	return c.flush(buf)
}

func (c *Console) ShowUnavailable(_ context.Context, _ error) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	writeLine(buf, "")
	writeLine(buf, unavailableLine)

	return c.flush(buf)
}

// Confirm asks a yes/no question; anything but y or yes is a no.
func (c *Console) Confirm(ctx context.Context, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if _, err := io.WriteString(c.out, "\n"+question+" (y/N): "); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	line, err := c.readLine(ctx)
	if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (c *Console) flush(buf *bytebufferpool.ByteBuffer) error {
	if _, err := c.out.Write(buf.B); err != nil {
		return fmt.Errorf("write console output: %w", err)
	}
	return nil
}

func writeRoster(buf *bytebufferpool.ByteBuffer, progress []draft.PositionProgress) {
	writeLine(buf, rosterHd)
	for _, p := range progress {
		writeLine(buf, fmt.Sprintf("%s: %d / %d", p.Position, p.Drafted, p.Limit))
	}
}

func writeLine(buf *bytebufferpool.ByteBuffer, line string) {
	_, _ = buf.WriteString(line)
	_ = buf.WriteByte('\n')
}

// selectionReason drops the sentinel prefix so the user sees only the
// detail, e.g. "7 is outside 1-5".
func selectionReason(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	prefix := draft.ErrInvalidSelection.Error() + ": "
	if idx := strings.LastIndex(msg, prefix); idx >= 0 {
		return msg[idx+len(prefix):]
	}
	return msg
}
