package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tcassidy/brotherhood-data/internal/legacy"
	"github.com/tcassidy/brotherhood-data/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		rec  legacy.GroupRecord
		want Kind
	}{
		{
			name: "explicit i-group type wins",
			rec:  legacy.GroupRecord{Name: "Open Circle Downtown", Type: "I-Group"},
			want: KindIGroup,
		},
		{
			name: "explicit f-group type wins",
			rec:  legacy.GroupRecord{Name: "Tuesday I-Group", Type: "F Group"},
			want: KindFGroup,
		},
		{
			name: "circle in type",
			rec:  legacy.GroupRecord{Name: "Northside", Type: "Men's Circle"},
			want: KindFGroup,
		},
		{
			name: "men's circle in name",
			rec:  legacy.GroupRecord{Name: "Men's Circle - Open"},
			want: KindFGroup,
		},
		{
			name: "open circle in name",
			rec:  legacy.GroupRecord{Name: "Riverside Open Circle"},
			want: KindFGroup,
		},
		{
			name: "closed circle in name",
			rec:  legacy.GroupRecord{Name: "Closed Circle of the West"},
			want: KindFGroup,
		},
		{
			name: "bare circle in name",
			rec:  legacy.GroupRecord{Name: "Harbor Circle"},
			want: KindFGroup,
		},
		{
			name: "circle as substring does not match",
			rec:  legacy.GroupRecord{Name: "Semicircle Lodge"},
			want: KindIGroup,
		},
		{
			name: "i-group in name",
			rec:  legacy.GroupRecord{Name: "Downtown I-Group"},
			want: KindIGroup,
		},
		{
			name: "igroup run together",
			rec:  legacy.GroupRecord{Name: "EastsideIgroup"},
			want: KindIGroup,
		},
		{
			name: "bare group in name",
			rec:  legacy.GroupRecord{Name: "Mountain Group"},
			want: KindIGroup,
		},
		{
			name: "unclassifiable defaults to i-group",
			rec:  legacy.GroupRecord{Name: "The Lodge"},
			want: KindIGroup,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(&tt.rec))
		})
	}
}

func TestClassifyFGroupSubtype(t *testing.T) {
	tests := []struct {
		name string
		rec  legacy.GroupRecord
		want string
	}{
		{
			name: "mixed gender flag wins",
			rec:  legacy.GroupRecord{Name: "Open Circle", IsMixedGender: "yes"},
			want: model.FGroupTypeMixed,
		},
		{
			name: "mixed gender numeric flag",
			rec:  legacy.GroupRecord{Name: "Closed Circle", IsMixedGender: "1"},
			want: model.FGroupTypeMixed,
		},
		{
			name: "open in name",
			rec:  legacy.GroupRecord{Name: "Men's Circle - Open"},
			want: model.FGroupTypeOpen,
		},
		{
			name: "closed in name",
			rec:  legacy.GroupRecord{Name: "Closed Men's Circle"},
			want: model.FGroupTypeClosed,
		},
		{
			name: "closed status without closed name",
			rec:  legacy.GroupRecord{Name: "Harbor Circle", Status: "Closed"},
			want: model.FGroupTypeClosed,
		},
		{
			name: "default men's",
			rec:  legacy.GroupRecord{Name: "Harbor Circle", Status: "active"},
			want: model.FGroupTypeMens,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyFGroupSubtype(&tt.rec))
		})
	}
}
