package hierarchy_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	internal "github.com/campushub/records-portal/internal"
	"github.com/campushub/records-portal/internal/hierarchy"
	"github.com/campushub/records-portal/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type MockHierarchyService struct {
	options []hierarchy.Option
	err     error
}

func (m *MockHierarchyService) Universities() ([]hierarchy.Option, error) {
	return m.options, m.err
}

func (m *MockHierarchyService) ChildrenOf(level hierarchy.Level, parentID *int64) ([]hierarchy.Option, error) {
	if m.err != nil {
		return nil, m.err
	}
	if parentID == nil {
		return []hierarchy.Option{}, nil
	}
	return m.options, nil
}

func (m *MockHierarchyService) ScopeFor(placement hierarchy.Placement) (*hierarchy.Scope, error) {
	return &hierarchy.Scope{}, m.err
}

func (m *MockHierarchyService) ValidatePlacement(placement hierarchy.Placement) error {
	return m.err
}

var _ = Describe("Hierarchy Handler", func() {
	var (
		mockService *MockHierarchyService
		handler     *hierarchy.Handler
	)

	BeforeEach(func() {
		mockService = &MockHierarchyService{
			options: []hierarchy.Option{
				{ID: 10, Name: "Engineering"},
				{ID: 11, Name: "Management"},
			},
		}
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		handler = hierarchy.NewHandler(transport.NewBaseHandler(slogger), mockService)
	})

	Describe("GetInstitutes", func() {
		It("should return the ordered child set", func() {
			req := httptest.NewRequest(http.MethodGet, "/hierarchy/institutes?university_id=1", nil)
			w := httptest.NewRecorder()

			handler.GetInstitutes(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp hierarchy.OptionsResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Options).To(HaveLen(2))
			Expect(resp.Options[0].Name).To(Equal("Engineering"))
		})

		It("should reject a missing parameter with a structured error", func() {
			req := httptest.NewRequest(http.MethodGet, "/hierarchy/institutes", nil)
			w := httptest.NewRecorder()

			handler.GetInstitutes(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var resp struct {
				Error internal.AppError `json:"error"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Error.Code).To(Equal(internal.ErrCodeMissingParameter))
		})

		It("should degrade a malformed parameter to an empty set", func() {
			req := httptest.NewRequest(http.MethodGet, "/hierarchy/institutes?university_id=abc", nil)
			w := httptest.NewRecorder()

			handler.GetInstitutes(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp hierarchy.OptionsResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Options).To(BeEmpty())
		})
	})
})
