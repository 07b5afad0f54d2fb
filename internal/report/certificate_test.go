package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DaanHessen/cmmc-trail/internal/engine"
)

func victoryStats() engine.RunStats {
	return engine.RunStats{
		Outcome:           engine.OutcomeVictory,
		Difficulty:        engine.DifficultyHard,
		QuestionsAnswered: 22,
		CorrectAnswers:    18,
		Accuracy:          82,
		Survivors:         []string{"Zoë", engine.InternName},
		Fallen:            []string{"Sam"},
		PartySize:         3,
		SPRSScore:         -4,
		Endings:           []engine.Ending{engine.EndingAgainstAllOdds},
	}
}

func TestRenderProducesPDF(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, victoryStats(), "audit-season", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestWriteCertificate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "certs")
	path, err := WriteCertificate(dir, victoryStats(), "a/b c", time.Now())
	if err != nil {
		t.Fatalf("WriteCertificate: %v", err)
	}
	if filepath.Base(path) != "cmmc-certificate-a-b-c.pdf" {
		t.Fatalf("unexpected file name %s", path)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Fatalf("certificate not written: %v", err)
	}
}

func TestWriteCertificateRefusesDefeat(t *testing.T) {
	st := victoryStats()
	st.Outcome = engine.OutcomeDefeat
	if _, err := WriteCertificate(t.TempDir(), st, "x", time.Now()); err == nil {
		t.Fatalf("expected an error for a defeat")
	}
}
