package dto_test

import (
	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/model"
	"net/http"
	"net/url"
	"testing"
	"time"
)

func TestMetadata_FromModel(t *testing.T) {
	// Create test time values
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2023, 1, 2, 12, 0, 0, 0, time.UTC)

	modelMetadata := model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "creator",
		ModifiedBy: "modifier",
	}

	metadata := &dto.Metadata{}
	metadata.FromModel(modelMetadata)

	expectedCreatedAt := createdAt.Format(constant.DateFormat)
	expectedModifiedAt := modifiedAt.Format(constant.DateFormat)

	if metadata.CreatedAt != expectedCreatedAt {
		t.Errorf("expected CreatedAt to be %s, got %s", expectedCreatedAt, metadata.CreatedAt)
	}

	if metadata.ModifiedAt != expectedModifiedAt {
		t.Errorf("expected ModifiedAt to be %s, got %s", expectedModifiedAt, metadata.ModifiedAt)
	}

	if metadata.CreatedBy != "creator" {
		t.Errorf("expected CreatedBy to be 'creator', got %s", metadata.CreatedBy)
	}

	if metadata.ModifiedBy != "modifier" {
		t.Errorf("expected ModifiedBy to be 'modifier', got %s", metadata.ModifiedBy)
	}
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name: "with all valid parameters",
			queryParams: map[string]string{
				"page":     "2",
				"limit":    "20",
				"sort_by":  "name",
				"sort_dir": "ASC",
			},
			defaultRequest: false,
			expected: dto.QueryParams{
				Page:    2,
				Limit:   20,
				SortBy:  "name",
				SortDir: "ASC",
			},
		},
		{
			name:           "with default request enabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name:           "with default request disabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: false,
			expected: dto.QueryParams{
				Page:    0,
				Limit:   0,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with invalid page parameter",
			queryParams: map[string]string{
				"page": "invalid",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage, // Should use default
				Limit:   constant.DefaultValueLimit,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with negative page parameter",
			queryParams: map[string]string{
				"page": "-1",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage, // Should use default
				Limit:   constant.DefaultValueLimit,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with zero page parameter",
			queryParams: map[string]string{
				"page": "0",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage, // Should use default
				Limit:   constant.DefaultValueLimit,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with invalid limit parameter",
			queryParams: map[string]string{
				"limit": "invalid",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit, // Should use default
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with negative limit parameter",
			queryParams: map[string]string{
				"limit": "-10",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit, // Should use default
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with partial parameters and defaults enabled",
			queryParams: map[string]string{
				"page":    "3",
				"sort_by": "email",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    3,
				Limit:   constant.DefaultValueLimit, // Should use default
				SortBy:  "email",
				SortDir: "", // Empty when not provided
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create a URL with query parameters
			baseURL := "http://example.com/test"
			u, err := url.Parse(baseURL)
			if err != nil {
				t.Fatalf("failed to parse URL: %v", err)
			}

			// Add query parameters
			query := u.Query()
			for key, value := range tt.queryParams {
				query.Set(key, value)
			}
			u.RawQuery = query.Encode()

			// Create HTTP request
			req, err := http.NewRequest("GET", u.String(), nil)
			if err != nil {
				t.Fatalf("failed to create request: %v", err)
			}

			// Test the method
			queryParams := &dto.QueryParams{}
			queryParams.FromRequest(req, tt.defaultRequest)

			// Verify results
			if queryParams.Page != tt.expected.Page {
				t.Errorf("expected Page to be %d, got %d", tt.expected.Page, queryParams.Page)
			}
			if queryParams.Limit != tt.expected.Limit {
				t.Errorf("expected Limit to be %d, got %d", tt.expected.Limit, queryParams.Limit)
			}
			if queryParams.SortBy != tt.expected.SortBy {
				t.Errorf("expected SortBy to be %s, got %s", tt.expected.SortBy, queryParams.SortBy)
			}
			if queryParams.SortDir != tt.expected.SortDir {
				t.Errorf("expected SortDir to be %s, got %s", tt.expected.SortDir, queryParams.SortDir)
			}
		})
	}
}

func TestSortDirectionConstants(t *testing.T) {
	if dto.SortDirAsc != "ASC" {
		t.Errorf("expected SortDirAsc to be 'ASC', got %s", dto.SortDirAsc)
	}
	if dto.SortDirDesc != "DESC" {
		t.Errorf("expected SortDirDesc to be 'DESC', got %s", dto.SortDirDesc)
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  int
	}{
		{
			name:      "less than",
			filter:    dto.Filter{Field: "start_date", Operator: dto.FilterOperatorLess, Value: "2025-01-02", Table: "booking_rooms"},
			wantWhere: "booking_rooms.start_date < :start_date",
			wantArgs:  1,
		},
		{
			name:      "greater than with arg name",
			filter:    dto.Filter{ArgName: "date_from", Field: "end_date", Operator: dto.FilterOperatorGreater, Value: "2025-01-01"},
			wantWhere: "end_date > :date_from",
			wantArgs:  1,
		},
		{
			name:      "in with slice",
			filter:    dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: []string{"pending", "confirmed"}},
			wantWhere: "status IN (:status_0, :status_1)",
			wantArgs:  2,
		},
		{
			name:      "not in with slice",
			filter:    dto.Filter{ArgName: "closed", Field: "status", Operator: dto.FilterOperatorNotIn, Value: []string{"completed", "cancelled"}, Table: "orders"},
			wantWhere: "orders.status NOT IN (:closed_0, :closed_1)",
			wantArgs:  2,
		},
		{
			name:      "empty in matches nothing",
			filter:    dto.Filter{Field: "id", Operator: dto.FilterOperatorIn, Value: []string{}},
			wantWhere: "FALSE",
			wantArgs:  0,
		},
		{
			name:      "empty not in matches everything",
			filter:    dto.Filter{Field: "id", Operator: dto.FilterOperatorNotIn, Value: []string{}},
			wantWhere: "TRUE",
			wantArgs:  0,
		},
		{
			name:      "in with a single value is still bound",
			filter:    dto.Filter{Field: "floor", Operator: dto.FilterOperatorIn, Value: 3},
			wantWhere: "floor IN (:floor)",
			wantArgs:  1,
		},
		{
			name:      "like is case insensitive",
			filter:    dto.Filter{Field: "name", Operator: dto.FilterOperatorLike, Value: "suite", Table: "room_types"},
			wantWhere: "room_types.name ILIKE :name",
			wantArgs:  1,
		},
		{
			name:      "is null",
			filter:    dto.Filter{Field: "extended_date", Operator: dto.FilterIsNull},
			wantWhere: "extended_date IS NULL",
			wantArgs:  0,
		},
		{
			name:      "plain query with bound args",
			filter:    dto.Filter{Operator: dto.FilterPlainQuery, Value: "EXISTS (SELECT 1 FROM rooms WHERE number = :room_number)", Args: map[string]any{"room_number": "101"}},
			wantWhere: "(EXISTS (SELECT 1 FROM rooms WHERE number = :room_number))",
			wantArgs:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			if where != tt.wantWhere {
				t.Errorf("expected where %q, got %q", tt.wantWhere, where)
			}

			if len(args) != tt.wantArgs {
				t.Errorf("expected %d args, got %d", tt.wantArgs, len(args))
			}
		})
	}
}

func TestFilter_LikeEscapesWildcards(t *testing.T) {
	filter := dto.Filter{Field: "code", Operator: dto.FilterOperatorLike, Value: `50%_off\`}

	_, args := filter.GetWhereClause()

	if args["code"] != `%50\%\_off\\%` {
		t.Errorf("unexpected pattern %q", args["code"])
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "hotel_id", Operator: dto.FilterOperatorEq, Value: "hotel-1"},
			dto.FilterGroup{Operator: dto.FilterGroupOperatorOr},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "status", Operator: dto.FilterOperatorEq, Value: "pending"},
					dto.Filter{Field: "paid_at", Operator: dto.FilterIsNull},
				},
			},
			"ignored",
		},
	}

	where, args := group.GetWhereClause()

	if want := "(hotel_id = :hotel_id AND (status = :status OR paid_at IS NULL))"; where != want {
		t.Errorf("expected where %q, got %q", want, where)
	}

	if len(args) != 2 {
		t.Errorf("expected 2 args, got %d", len(args))
	}

	empty := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}
	if where, _ := empty.GetWhereClause(); where != "" {
		t.Errorf("expected empty clause, got %q", where)
	}
}

func TestQueryParams_RestrictSort(t *testing.T) {
	allowed := dto.QueryParams{SortBy: "number"}
	allowed.RestrictSort("hotel_rooms", "number", "floor")

	if allowed.SortBy != "hotel_rooms.number" || allowed.SortDir != dto.SortDirAsc {
		t.Errorf("unexpected sort %s %s", allowed.SortBy, allowed.SortDir)
	}

	rejected := dto.QueryParams{SortBy: "1; DROP TABLE users", SortDir: dto.SortDirDesc}
	rejected.RestrictSort("hotel_rooms", "number")

	if rejected.SortBy != "" || rejected.SortDir != "" {
		t.Errorf("expected sort to be cleared, got %s %s", rejected.SortBy, rejected.SortDir)
	}
}
