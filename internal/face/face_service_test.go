package face

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	profiles map[string]FaceProfile
	finds    int
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, p *FaceProfile) error {
	f.profiles[p.EmployeeID.String()] = *p
	return nil
}
func (f *fakeRepo) FindByEmployee(ctx context.Context, employeeID string) (*FaceProfile, error) {
	p, ok := f.profiles[employeeID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]FaceProfile, error) {
	f.finds++
	var out []FaceProfile
	for _, p := range f.profiles {
		out = append(out, p)
	}
	return out, nil
}
func (f *fakeRepo) Update(ctx context.Context, p *FaceProfile) error {
	f.profiles[p.EmployeeID.String()] = *p
	return nil
}

func TestService_EnrollComputesMeanAndInvalidatesCache(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	rdb, redisMock := redismock.NewClientMock()

	repo := &fakeRepo{profiles: map[string]FaceProfile{}}
	svc := NewService(db, repo, rdb)

	employeeID := uuid.New().String()
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()
	redisMock.ExpectDel(faceMeansKey).SetVal(1)
	first, err := svc.Enroll(ctx, employeeID, EnrollFaceRequest{Descriptor: []float64{1, 0}})
	assert.NoError(t, err)
	assert.Equal(t, 1, first.Descriptors)

	mock.ExpectBegin()
	mock.ExpectCommit()
	redisMock.ExpectDel(faceMeansKey).SetVal(1)
	second, err := svc.Enroll(ctx, employeeID, EnrollFaceRequest{Descriptor: []float64{0, 1}})
	assert.NoError(t, err)
	assert.Equal(t, 2, second.Descriptors)

	mean, err := func() ([]float64, error) {
		p := repo.profiles[employeeID]
		return p.DecodedMean()
	}()
	assert.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5}, mean)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestService_EnrollRejectsLengthMismatch(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()
	rdb, redisMock := redismock.NewClientMock()

	repo := &fakeRepo{profiles: map[string]FaceProfile{}}
	svc := NewService(db, repo, rdb)
	employeeID := uuid.New().String()

	mock.ExpectBegin()
	mock.ExpectCommit()
	redisMock.ExpectDel(faceMeansKey).SetVal(1)
	_, err := svc.Enroll(context.Background(), employeeID, EnrollFaceRequest{Descriptor: []float64{1, 0, 0}})
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Enroll(context.Background(), employeeID, EnrollFaceRequest{Descriptor: []float64{1, 0}})
	assert.ErrorIs(t, err, ErrDescriptorLengthMismatch)
}

func TestService_RecognizeUsesThreshold(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()
	rdb, redisMock := redismock.NewClientMock()

	enrolled := uuid.New().String()
	means := []enrolledMean{{EmployeeID: enrolled, Mean: []float64{1, 0, 0}}}
	cached, _ := json.Marshal(means)

	repo := &fakeRepo{profiles: map[string]FaceProfile{}}
	svc := NewService(db, repo, rdb)
	ctx := context.Background()

	// Close enough: distance 0.3 < 0.6.
	redisMock.ExpectGet(faceMeansKey).SetVal(string(cached))
	resp, err := svc.Recognize(ctx, RecognizeFaceRequest{Descriptor: []float64{0.7, 0, 0}})
	assert.NoError(t, err)
	assert.True(t, resp.Matched)
	assert.Equal(t, enrolled, resp.EmployeeID)
	assert.InDelta(t, 0.3, resp.Distance, 1e-9)

	// Too far: distance 1.0 >= 0.6.
	redisMock.ExpectGet(faceMeansKey).SetVal(string(cached))
	resp, err = svc.Recognize(ctx, RecognizeFaceRequest{Descriptor: []float64{0, 1, 0}})
	assert.NoError(t, err)
	assert.False(t, resp.Matched)
	assert.Empty(t, resp.EmployeeID)

	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestService_RecognizeFillsCacheOnMiss(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()
	rdb, redisMock := redismock.NewClientMock()

	employeeID := uuid.New()
	mean, _ := json.Marshal([]float64{1, 0})
	descriptors, _ := json.Marshal([][]float64{{1, 0}})
	repo := &fakeRepo{profiles: map[string]FaceProfile{
		employeeID.String(): {
			ID:          uuid.New(),
			EmployeeID:  employeeID,
			Descriptors: string(descriptors),
			Mean:        string(mean),
		},
	}}
	svc := NewService(db, repo, rdb)

	expected, _ := json.Marshal([]enrolledMean{{EmployeeID: employeeID.String(), Mean: []float64{1, 0}}})
	redisMock.ExpectGet(faceMeansKey).RedisNil()
	redisMock.ExpectSet(faceMeansKey, expected, faceCacheTTL).SetVal("OK")

	resp, err := svc.Recognize(context.Background(), RecognizeFaceRequest{Descriptor: []float64{1, 0}})
	assert.NoError(t, err)
	assert.True(t, resp.Matched)
	assert.Equal(t, 1, repo.finds)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}
