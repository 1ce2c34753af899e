package medicines

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/giygas/myoncologist-api/entities"
	"github.com/giygas/myoncologist-api/processing"
	"github.com/google/uuid"
)

// Image is an uploaded photo already checked to be an image.
type Image struct {
	Data     []byte
	MIMEType string
}

// DataURL encodes the image the way it is attached to a scan record.
func (img Image) DataURL() string {
	return "data:" + img.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

// Scanner simulates medicine recognition: it waits for the configured
// processing delay and then selects a record from the table.
type Scanner struct {
	selector *Selector
	delay    time.Duration
	now      func() time.Time
}

// NewScanner creates a scanner. A zero delay returns immediately.
func NewScanner(selector *Selector, delay time.Duration) *Scanner {
	if selector == nil {
		selector = NewSelector(nil)
	}
	return &Scanner{selector: selector, delay: delay, now: time.Now}
}

// Analyze produces the record for one upload. It returns ctx.Err() if the
// context ends before the processing delay elapses.
func (s *Scanner) Analyze(ctx context.Context, isFirstScan bool, img Image) (entities.MedicineRecord, error) {
	if err := processing.Wait(ctx, s.delay); err != nil {
		return entities.MedicineRecord{}, err
	}

	rec := s.selector.Select(isFirstScan)
	rec.ScanID = uuid.NewString()
	rec.ImageURL = img.DataURL()
	rec.ScannedAt = s.now().UTC()
	return rec, nil
}
