package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/DaanHessen/cmmc-trail/internal/engine"
)

var endingTitles = map[engine.Ending]string{
	engine.EndingPerfectRun:     "Legendary CISO: flawless audit, nobody lost",
	engine.EndingSoleSurvivor:   "Sole Survivor: one assessor made it to the end",
	engine.EndingInternRevenge:  "Intern's Revenge: the unnamed intern carried the program",
	engine.EndingAgainstAllOdds: "Against All Odds: certified with a negative SPRS score",
}

// FileName is the certificate file name for a run seed.
func FileName(seed string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, seed)
	if clean == "" {
		clean = "run"
	}
	return "cmmc-certificate-" + clean + ".pdf"
}

// WriteCertificate renders the certificate for a finished run into dir and returns the file path.
func WriteCertificate(dir string, st engine.RunStats, seed string, issued time.Time) (string, error) {
	if st.Outcome != engine.OutcomeVictory {
		return "", fmt.Errorf("certificates are only issued for victories")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName(seed))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := Render(f, st, seed, issued); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

// Render writes a one-page landscape PDF certificate to w.
func Render(w io.Writer, st engine.RunStats, seed string, issued time.Time) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("CMMC Level 2 Certificate of Survival", false)
	pdf.SetAuthor("The CMMC Trail", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, pageH := pdf.GetPageSize()
	pdf.SetDrawColor(34, 139, 34)
	pdf.SetLineWidth(2)
	pdf.Rect(10, 10, pageW-20, pageH-20, "D")
	pdf.SetLineWidth(0.5)
	pdf.Rect(14, 14, pageW-28, pageH-28, "D")

	contentW := pageW - 40
	pdf.SetY(28)
	pdf.SetFont("Helvetica", "B", 30)
	pdf.SetTextColor(20, 90, 20)
	pdf.CellFormat(contentW, 14, "Certificate of CMMC Survival", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "I", 13)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(contentW, 8, "The CMMC Trail: 2,000 miles of compliance, completed", "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(contentW, 8, "This certifies that the compliance team of", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 20)
	team := strings.Join(st.Survivors, ", ")
	if team == "" {
		team = "an unnamed contractor"
	}
	pdf.MultiCell(contentW, 10, tr(team), "", "C", false)
	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(contentW, 8, "reached CMMC Level 2 certification on the trail.", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 12)
	rows := [][2]string{
		{"Difficulty", st.Difficulty.Label()},
		{"Final SPRS score", fmt.Sprintf("%d", st.SPRSScore)},
		{"Accuracy", fmt.Sprintf("%d%% (%d of %d)", st.Accuracy, st.CorrectAnswers, st.QuestionsAnswered)},
		{"Survivors", fmt.Sprintf("%d of %d", len(st.Survivors), st.PartySize)},
		{"Run seed", seed},
	}
	labelW, valueW := 60.0, 90.0
	left := (pageW - labelW - valueW) / 2
	for _, r := range rows {
		pdf.SetX(left)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(labelW, 7, r[0], "", 0, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(valueW, 7, "  "+tr(r[1]), "", 1, "L", false, 0, "")
	}

	if len(st.Endings) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "BI", 12)
		pdf.SetTextColor(140, 90, 0)
		for _, e := range st.Endings {
			pdf.CellFormat(contentW, 7, endingTitles[e], "", 1, "C", false, 0, "")
		}
	}
	if len(st.Fallen) > 0 {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(contentW, 6, tr("In memory of "+strings.Join(st.Fallen, ", ")+", lost on the trail."), "", "C", false)
	}

	pdf.SetY(pageH - 32)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(contentW, 6, "Issued "+issued.Format("January 2, 2006"), "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 6, "Not valid for actual DoD contract award.", "", 1, "C", false, 0, "")

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}
