package leave_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nidhidattani13/ems/internal/leave"
	"github.com/nidhidattani13/ems/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	submitFn func(ctx context.Context, employeeID string, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error)
	editFn   func(ctx context.Context, id, employeeID string, req leave.UpdateLeaveRequestRequest) (leave.LeaveRequestResponse, error)
	decideFn func(ctx context.Context, id, approverID, decision string, teamScoped bool) (leave.LeaveRequestResponse, error)
}

func (f *fakeService) Submit(ctx context.Context, employeeID string, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	return f.submitFn(ctx, employeeID, req)
}
func (f *fakeService) Edit(ctx context.Context, id, employeeID string, req leave.UpdateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	return f.editFn(ctx, id, employeeID, req)
}
func (f *fakeService) Decide(ctx context.Context, id, approverID, decision string, teamScoped bool) (leave.LeaveRequestResponse, error) {
	return f.decideFn(ctx, id, approverID, decision, teamScoped)
}
func (f *fakeService) GetByID(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	return leave.LeaveRequestResponse{}, nil
}
func (f *fakeService) ListAll(ctx context.Context) ([]leave.LeaveRequestResponse, error) {
	return nil, nil
}
func (f *fakeService) ListMine(ctx context.Context, employeeID string) ([]leave.LeaveRequestResponse, error) {
	return nil, nil
}
func (f *fakeService) ListTeam(ctx context.Context, headID string) ([]leave.LeaveRequestResponse, error) {
	return nil, nil
}
func (f *fakeService) Delete(ctx context.Context, id string) error { return nil }

func TestHandler_Submit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	svc := &fakeService{
		submitFn: func(ctx context.Context, id string, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
			assert.Equal(t, employeeID, id)
			assert.Equal(t, "2024-03-20", req.StartDate)
			return leave.LeaveRequestResponse{ID: uuid.New().String(), LeaveStatus: leave.StatusPending}, nil
		},
	}
	h := leave.NewHandler(svc)

	body := `{"leave_type_id":"` + uuid.New().String() + `","start_date":"2024-03-20","end_date":"2024-03-21"}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", employeeID)
	c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Submit(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), leave.StatusPending)
}

func TestHandler_UpdateRoutesDecisionBodyToDecide(t *testing.T) {
	gin.SetMode(gin.TestMode)
	approverID := uuid.New().String()
	leaveID := uuid.New().String()

	decided := false
	svc := &fakeService{
		decideFn: func(ctx context.Context, id, approver, decision string, teamScoped bool) (leave.LeaveRequestResponse, error) {
			decided = true
			assert.Equal(t, leaveID, id)
			assert.Equal(t, approverID, approver)
			assert.Equal(t, leave.StatusApproved, decision)
			assert.False(t, teamScoped, "admin decisions are not team scoped")
			return leave.LeaveRequestResponse{ID: id, LeaveStatus: decision}, nil
		},
	}
	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", approverID)
	c.Set("role", rbac.RoleAdmin)
	c.Params = gin.Params{{Key: "id", Value: leaveID}}
	c.Request = httptest.NewRequest(http.MethodPut, "/leave-requests/"+leaveID, strings.NewReader(`{"decision":"Approved"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decided)
}

func TestHandler_UpdateRoutesDateBodyToEdit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()
	leaveID := uuid.New().String()

	edited := false
	svc := &fakeService{
		editFn: func(ctx context.Context, id, owner string, req leave.UpdateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
			edited = true
			assert.Equal(t, leaveID, id)
			assert.Equal(t, employeeID, owner)
			return leave.LeaveRequestResponse{ID: id}, nil
		},
	}
	h := leave.NewHandler(svc)

	body := `{"leave_type_id":"` + uuid.New().String() + `","start_date":"2024-03-20","end_date":"2024-03-21"}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", employeeID)
	c.Set("role", rbac.RoleEmployee)
	c.Params = gin.Params{{Key: "id", Value: leaveID}}
	c.Request = httptest.NewRequest(http.MethodPut, "/leave-requests/"+leaveID, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, edited)
}

func TestHandler_NonAdminDecisionIsTeamScoped(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		decideFn: func(ctx context.Context, id, approver, decision string, teamScoped bool) (leave.LeaveRequestResponse, error) {
			assert.True(t, teamScoped)
			return leave.LeaveRequestResponse{ID: id, LeaveStatus: decision}, nil
		},
	}
	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", uuid.New().String())
	c.Set("role", rbac.RoleEmployee)
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	c.Request = httptest.NewRequest(http.MethodPut, "/leave-requests/x", strings.NewReader(`{"decision":"Rejected"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
