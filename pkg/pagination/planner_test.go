package pagination

import (
	"reflect"
	"testing"
)

func TestPageStarts(t *testing.T) {
	tests := []struct {
		name         string
		itemsPerPage int64
		totalResults int64
		want         []int64
	}{
		{
			name:         "single page covers the day",
			itemsPerPage: 100,
			totalResults: 100,
			want:         nil,
		},
		{
			name:         "three pages",
			itemsPerPage: 100,
			totalResults: 250,
			want:         []int64{1, 101, 201},
		},
		{
			name:         "empty day",
			itemsPerPage: 100,
			totalResults: 0,
			want:         nil,
		},
		{
			name:         "page size exceeds total",
			itemsPerPage: 1000,
			totalResults: 400,
			want:         []int64{1},
		},
		{
			name:         "exact multiple",
			itemsPerPage: 100,
			totalResults: 300,
			want:         []int64{1, 101, 201},
		},
		{
			name:         "total one past a page boundary",
			itemsPerPage: 100,
			totalResults: 301,
			want:         []int64{1, 101, 201},
		},
		{
			name:         "zero items per page",
			itemsPerPage: 0,
			totalResults: 500,
			want:         nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PageStarts(tt.itemsPerPage, tt.totalResults)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PageStarts(%d, %d) = %v, want %v",
					tt.itemsPerPage, tt.totalResults, got, tt.want)
			}
		})
	}
}
