package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidateChunkRecord(t *testing.T) {
	validTime := time.Now().Add(-1 * time.Hour)
	futureTime := time.Now().Add(1 * time.Hour)

	valid := func() *ChunkRecord {
		return &ChunkRecord{
			Text:      "Hello world.",
			Embedding: []float32{0.1, 0.2, 0.3},
			Filename:  "doc.pdf",
			Strategy:  "fixed-size-overlap(1000,100)",
			CreatedAt: validTime,
		}
	}

	tests := []struct {
		name    string
		record  func() *ChunkRecord
		wantErr error
	}{
		{
			name:    "valid record",
			record:  valid,
			wantErr: nil,
		},
		{
			name:    "nil record",
			record:  func() *ChunkRecord { return nil },
			wantErr: ErrInvalidChunkRecord,
		},
		{
			name: "empty text",
			record: func() *ChunkRecord {
				r := valid()
				r.Text = ""
				return r
			},
			wantErr: ErrEmptyContent,
		},
		{
			name: "whitespace text",
			record: func() *ChunkRecord {
				r := valid()
				r.Text = " \n\t "
				return r
			},
			wantErr: ErrEmptyContent,
		},
		{
			name: "missing embedding",
			record: func() *ChunkRecord {
				r := valid()
				r.Embedding = nil
				return r
			},
			wantErr: ErrEmptyEmbedding,
		},
		{
			name: "missing filename",
			record: func() *ChunkRecord {
				r := valid()
				r.Filename = ""
				return r
			},
			wantErr: ErrEmptyFilename,
		},
		{
			name: "missing strategy",
			record: func() *ChunkRecord {
				r := valid()
				r.Strategy = ""
				return r
			},
			wantErr: ErrEmptyStrategy,
		},
		{
			name: "future timestamp",
			record: func() *ChunkRecord {
				r := valid()
				r.CreatedAt = futureTime
				return r
			},
			wantErr: ErrInvalidTimestamp,
		},
		{
			name: "zero timestamp",
			record: func() *ChunkRecord {
				r := valid()
				r.CreatedAt = time.Time{}
				return r
			},
			wantErr: ErrInvalidTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChunkRecord(tt.record())
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateChunkRecord() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateChunkRecord() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidChunkRecord) {
				t.Errorf("ValidateChunkRecord() error should wrap ErrInvalidChunkRecord, got %v", err)
			}
		})
	}
}

func TestValidateStrategy(t *testing.T) {
	tests := []struct {
		name     string
		strategy Strategy
		wantErr  bool
	}{
		{"defaults", Strategy{Name: StrategyFixedSizeOverlap, Size: 1000, Overlap: 100}, false},
		{"zero overlap", Strategy{Name: StrategyFixedSizeOverlap, Size: 10, Overlap: 0}, false},
		{"overlap one less than size", Strategy{Name: StrategyFixedSizeOverlap, Size: 10, Overlap: 9}, false},
		{"overlap equals size", Strategy{Name: StrategyFixedSizeOverlap, Size: 10, Overlap: 10}, true},
		{"overlap exceeds size", Strategy{Name: StrategyFixedSizeOverlap, Size: 10, Overlap: 11}, true},
		{"negative overlap", Strategy{Name: StrategyFixedSizeOverlap, Size: 10, Overlap: -1}, true},
		{"zero size", Strategy{Name: StrategyFixedSizeOverlap, Size: 0, Overlap: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStrategy(tt.strategy)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("ValidateStrategy() error = %v, want ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateStrategy() unexpected error = %v", err)
			}
		})
	}
}

func TestIsValidTimestamp(t *testing.T) {
	if IsValidTimestamp(time.Time{}) {
		t.Error("zero time should be invalid")
	}
	if IsValidTimestamp(time.Now().Add(time.Hour)) {
		t.Error("future time should be invalid")
	}
	if !IsValidTimestamp(time.Now().Add(-time.Second)) {
		t.Error("past time should be valid")
	}
}
