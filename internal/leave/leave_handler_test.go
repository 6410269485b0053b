package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-attend/internal/leave"
	leaveerrors "go-attend/internal/leave/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveService struct {
	createFn  func(ctx context.Context, actorID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	getAllFn  func(ctx context.Context, actorID string, canReadAll bool) ([]leave.LeaveResponse, error)
	getByIDFn func(ctx context.Context, id string) (leave.LeaveResponse, error)
	approveFn func(ctx context.Context, actorID, id string) (leave.LeaveResponse, error)
	rejectFn  func(ctx context.Context, actorID, id, rejectionReason string) (leave.LeaveResponse, error)
	cancelFn  func(ctx context.Context, actorID, id string) (leave.LeaveResponse, error)
}

func (f *fakeLeaveService) Create(ctx context.Context, actorID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	return f.createFn(ctx, actorID, req)
}
func (f *fakeLeaveService) GetAll(ctx context.Context, actorID string, canReadAll bool) ([]leave.LeaveResponse, error) {
	return f.getAllFn(ctx, actorID, canReadAll)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeLeaveService) Approve(ctx context.Context, actorID, id string) (leave.LeaveResponse, error) {
	return f.approveFn(ctx, actorID, id)
}
func (f *fakeLeaveService) Reject(ctx context.Context, actorID, id, rejectionReason string) (leave.LeaveResponse, error) {
	return f.rejectFn(ctx, actorID, id, rejectionReason)
}
func (f *fakeLeaveService) Cancel(ctx context.Context, actorID, id string) (leave.LeaveResponse, error) {
	return f.cancelFn(ctx, actorID, id)
}

func TestLeaveHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		actorID := uuid.NewString()

		svc := &fakeLeaveService{
			createFn: func(ctx context.Context, aid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, actorID, aid)
				assert.Equal(t, "ANNUAL", req.LeaveType)
				return leave.LeaveResponse{
					ID:        uuid.NewString(),
					UserID:    aid,
					LeaveType: req.LeaveType,
					StartDate: req.StartDate,
					EndDate:   req.EndDate,
					TotalDays: 2,
					Reason:    req.Reason,
					Status:    leave.StatusPending,
				}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"leave_type":"ANNUAL","start_date":"2026-09-07","end_date":"2026-09-08","reason":"Urusan keluarga"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", actorID)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, actorID, got.UserID)
		assert.Equal(t, leave.StatusPending, got.Status)
		assert.Equal(t, 2, got.TotalDays)
	})

	t.Run("negative validation error", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("negative overlap maps to conflict", func(t *testing.T) {
		svc := &fakeLeaveService{
			createFn: func(ctx context.Context, actorID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveOverlap
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"leave_type":"ANNUAL","start_date":"2026-09-07","end_date":"2026-09-08"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", uuid.NewString())

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, leaveerrors.ErrLeaveOverlap.Code, env.Error.Code)
	})
}

func TestLeaveHandler_GetByID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ownerID := uuid.NewString()
	leaveID := uuid.NewString()

	svc := &fakeLeaveService{
		getByIDFn: func(ctx context.Context, id string) (leave.LeaveResponse, error) {
			return leave.LeaveResponse{ID: id, UserID: ownerID, Status: leave.StatusPending}, nil
		},
	}
	h := leave.NewHandler(svc)

	t.Run("owner sees own leave", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves/"+leaveID, nil)
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("user_id", ownerID)
		c.Set("role", "EMPLOYEE")

		h.GetByID(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("other employee gets not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves/"+leaveID, nil)
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("user_id", uuid.NewString())
		c.Set("role", "EMPLOYEE")

		h.GetByID(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("team lead sees any leave", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leaves/"+leaveID, nil)
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("user_id", uuid.NewString())
		c.Set("role", "TEAM_LEAD")

		h.GetByID(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestLeaveHandler_Reject(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("negative reason required by binding", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/x/reject", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Reject(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("success passes reason through", func(t *testing.T) {
		actorID := uuid.NewString()
		leaveID := uuid.NewString()

		svc := &fakeLeaveService{
			rejectFn: func(ctx context.Context, aid, id, reason string) (leave.LeaveResponse, error) {
				assert.Equal(t, actorID, aid)
				assert.Equal(t, leaveID, id)
				assert.Equal(t, "Kuota tim penuh", reason)
				rr := reason
				return leave.LeaveResponse{ID: id, Status: leave.StatusRejected, RejectionReason: &rr}, nil
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/"+leaveID+"/reject", strings.NewReader(`{"reason":"Kuota tim penuh"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("user_id", actorID)

		h.Reject(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})
}
