package upcean

import (
	"errors"
	"testing"

	scanline "github.com/scanlinehq/scanline"
	"github.com/scanlinehq/scanline/bitrow"
)

func TestFindGuardPattern(t *testing.T) {
	// Start guard at scale 2: bar 2, space 2, bar 2.
	row := rowFromRuns(10, true, 2, 2, 2)
	span, err := FindGuardPattern(row, 0, false, StartEndPattern)
	if err != nil {
		t.Fatalf("FindGuardPattern: %v", err)
	}
	if span.Begin != 10 || span.End != 16 {
		t.Errorf("span = %+v, want {10 16}", span)
	}
}

func TestFindGuardPatternSlidesPastMismatch(t *testing.T) {
	// A wide bar pair first, then a real guard.
	row := rowFromRuns(6, true, 8, 2, 2, 2, 2)
	span, err := FindGuardPattern(row, 0, false, StartEndPattern)
	if err != nil {
		t.Fatalf("FindGuardPattern: %v", err)
	}
	if span.Begin != 16 || span.End != 22 {
		t.Errorf("span = %+v, want {16 22}", span)
	}
}

func TestFindGuardPatternBlankRow(t *testing.T) {
	row := bitrow.NewRow(50)
	if _, err := FindGuardPattern(row, 0, false, StartEndPattern); !errors.Is(err, scanline.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestFindStartGuardPatternRequiresQuietZone(t *testing.T) {
	// First candidate guard sits at the row edge with no quiet zone; the
	// second has one and must be the match.
	row := bitrow.NewRow(60)
	row.SetRange(0, 2)   // bar
	row.SetRange(4, 6)   // bar: guard with only a 0-wide quiet zone
	row.SetRange(20, 22) // quiet 14+, then a clean guard
	row.SetRange(24, 26)

	span, err := FindStartGuardPattern(row)
	if err != nil {
		t.Fatalf("FindStartGuardPattern: %v", err)
	}
	if span.Begin != 20 || span.End != 26 {
		t.Errorf("span = %+v, want {20 26}", span)
	}
}

func TestFindStartGuardPatternNoneFound(t *testing.T) {
	row := bitrow.NewRow(40)
	row.SetRange(0, 2)
	row.SetRange(4, 6)
	if _, err := FindStartGuardPattern(row); !errors.Is(err, scanline.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestFindMiddleGuardPattern(t *testing.T) {
	// Middle guard is white-first: space bar space bar space. A trailing
	// bar closes the final run so the window can be scored.
	row := rowFromRuns(12, false, 1, 1, 1, 1, 1, 1)
	span, err := FindMiddleGuardPattern(row, 12)
	if err != nil {
		t.Fatalf("FindMiddleGuardPattern: %v", err)
	}
	if span.Begin != 12 || span.End != 17 {
		t.Errorf("span = %+v, want {12 17}", span)
	}
}
