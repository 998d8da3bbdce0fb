package service

import (
	"context"
	"testing"
	"time"

	"storetrack/internal/app/store/entity"
	"storetrack/internal/app/store/repository"
	"storetrack/internal/app/store/repository/mocks"
	"storetrack/internal/app/store/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newEmployeeService() (*EmployeeService, *mocks.MockEmployeeRepository, *mocks.MockUserRepository, *mocks.MockSaleRepository) {
	employeeRepo := new(mocks.MockEmployeeRepository)
	userRepo := new(mocks.MockUserRepository)
	saleRepo := new(mocks.MockSaleRepository)

	svc := NewEmployeeService(employeeRepo, userRepo, saleRepo)

	return svc, employeeRepo, userRepo, saleRepo
}

// ===================== CreateEmployee Tests =====================

func TestEmployeeService_CreateEmployee_WithoutUser(t *testing.T) {
	ctx := context.Background()
	svc, employeeRepo, userRepo, _ := newEmployeeService()

	now := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)
	employeeRepo.On("Create", ctx, mock.AnythingOfType("*entity.Employee")).Return(nil)

	req := &entity.CreateEmployeeRequest{
		Name:     "Ivan Petrov",
		Position: "Sales Assistant",
	}

	employee, err := svc.CreateEmployee(ctx, req, now)

	require.NoError(t, err)
	assert.Equal(t, "Ivan Petrov", employee.Name)
	assert.Equal(t, now, employee.DateJoined)
	assert.Nil(t, employee.UserID)
	userRepo.AssertNotCalled(t, "Create")
}

func TestEmployeeService_CreateEmployee_WithUser(t *testing.T) {
	ctx := context.Background()
	svc, employeeRepo, userRepo, _ := newEmployeeService()

	userRepo.On("GetByUsername", ctx, "ipetrov").Return(nil, repository.ErrUserNotFound)
	userRepo.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Username == "ipetrov" && util.CheckPassword("secret123", u.PasswordHash)
	})).Return(nil)
	employeeRepo.On("Create", ctx, mock.MatchedBy(func(e *entity.Employee) bool {
		return e.UserID != nil
	})).Return(nil)

	req := &entity.CreateEmployeeRequest{
		Name:       "Ivan Petrov",
		Position:   "Sales Assistant",
		Email:      "ipetrov@store.example",
		CreateUser: true,
		Username:   "ipetrov",
		Password:   "secret123",
	}

	employee, err := svc.CreateEmployee(ctx, req, time.Now())

	require.NoError(t, err)
	require.NotNil(t, employee.UserID)
	userRepo.AssertExpectations(t)
	employeeRepo.AssertExpectations(t)
}

func TestEmployeeService_CreateEmployee_UsernameTaken(t *testing.T) {
	ctx := context.Background()
	svc, employeeRepo, userRepo, _ := newEmployeeService()

	existing := &entity.User{ID: uuid.New(), Username: "ipetrov"}
	userRepo.On("GetByUsername", ctx, "ipetrov").Return(existing, nil)

	req := &entity.CreateEmployeeRequest{
		Name:       "Ivan Petrov",
		Position:   "Sales Assistant",
		CreateUser: true,
		Username:   "ipetrov",
		Password:   "secret123",
	}

	employee, err := svc.CreateEmployee(ctx, req, time.Now())

	assert.Nil(t, employee)
	assert.ErrorIs(t, err, ErrUsernameTaken)
	userRepo.AssertNotCalled(t, "Create")
	employeeRepo.AssertNotCalled(t, "Create")
}

// ===================== GetEmployee Tests =====================

func TestEmployeeService_GetEmployee_BuildsDetail(t *testing.T) {
	ctx := context.Background()
	svc, employeeRepo, _, saleRepo := newEmployeeService()

	employee := &entity.Employee{ID: uuid.New(), Name: "Ivan Petrov"}
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

	employeeRepo.On("GetByID", ctx, employee.ID).Return(employee, nil)
	saleRepo.On("List", ctx, mock.AnythingOfType("entity.SaleFilter")).
		Return([]entity.Sale{{ID: uuid.New(), Quantity: 1, Price: decimal.NewFromInt(50)}}, entity.Pagination{}, nil)
	saleRepo.On("Count", ctx, mock.MatchedBy(func(f entity.SaleFilter) bool {
		return f.EmployeeID != nil && f.StartDate == nil
	})).Return(int64(12), nil)
	// Суммы за все время и за каждый из шести месяцев
	saleRepo.On("SumPrice", ctx, mock.AnythingOfType("entity.SaleFilter")).Return(decimal.NewFromInt(600), nil)

	detail, err := svc.GetEmployee(ctx, employee.ID, now)

	require.NoError(t, err)
	assert.Equal(t, int64(12), detail.TotalSales)
	assert.True(t, detail.TotalRevenue.Equal(decimal.NewFromInt(600)))
	assert.Len(t, detail.RecentSales, 1)
	// Шесть месяцев, от старых к новым
	require.Len(t, detail.MonthlyChart.Labels, 6)
	assert.Equal(t, "Jan", detail.MonthlyChart.Labels[0])
	assert.Equal(t, "Jun", detail.MonthlyChart.Labels[5])
}

func TestEmployeeService_GetEmployee_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, employeeRepo, _, _ := newEmployeeService()

	id := uuid.New()
	employeeRepo.On("GetByID", ctx, id).Return(nil, repository.ErrEmployeeNotFound)

	detail, err := svc.GetEmployee(ctx, id, time.Now())

	assert.Nil(t, detail)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

// ===================== ListEmployees Tests =====================

func TestEmployeeService_ListEmployees_PerformancePercentage(t *testing.T) {
	ctx := context.Background()
	svc, employeeRepo, _, saleRepo := newEmployeeService()

	employees := []entity.Employee{{ID: uuid.New(), Name: "Ivan Petrov"}}
	employeeRepo.On("GetAll", ctx).Return(employees, nil)

	// Общая выручка магазина
	saleRepo.On("SumPrice", ctx, mock.MatchedBy(func(f entity.SaleFilter) bool {
		return f.EmployeeID == nil
	})).Return(decimal.NewFromInt(1000), nil)
	// Выручка сотрудника
	saleRepo.On("SumPrice", ctx, mock.MatchedBy(func(f entity.SaleFilter) bool {
		return f.EmployeeID != nil
	})).Return(decimal.NewFromInt(250), nil)
	saleRepo.On("Count", ctx, mock.AnythingOfType("entity.SaleFilter")).Return(int64(5), nil)

	rows, err := svc.ListEmployees(ctx, time.Now())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(5), rows[0].SalesCount)
	assert.Equal(t, 25.0, rows[0].PerformancePercentage)
}

func TestEmployeeService_ListEmployees_ZeroStoreRevenue(t *testing.T) {
	ctx := context.Background()
	svc, employeeRepo, _, saleRepo := newEmployeeService()

	employees := []entity.Employee{{ID: uuid.New(), Name: "Ivan Petrov"}}
	employeeRepo.On("GetAll", ctx).Return(employees, nil)
	saleRepo.On("SumPrice", ctx, mock.AnythingOfType("entity.SaleFilter")).Return(decimal.Zero, nil)
	saleRepo.On("Count", ctx, mock.AnythingOfType("entity.SaleFilter")).Return(int64(0), nil)

	rows, err := svc.ListEmployees(ctx, time.Now())

	// Нулевая выручка магазина не приводит к делению на ноль
	require.NoError(t, err)
	assert.Equal(t, 0.0, rows[0].PerformancePercentage)
}

// ===================== UpdateEmployee Tests =====================

func TestEmployeeService_UpdateEmployee_SyncsLinkedUser(t *testing.T) {
	ctx := context.Background()
	svc, employeeRepo, userRepo, _ := newEmployeeService()

	userID := uuid.New()
	employee := &entity.Employee{ID: uuid.New(), Name: "Ivan Petrov", UserID: &userID}
	user := &entity.User{ID: userID, Username: "ipetrov", Email: "old@store.example"}

	employeeRepo.On("GetByID", ctx, employee.ID).Return(employee, nil)
	employeeRepo.On("Update", ctx, mock.AnythingOfType("*entity.Employee")).Return(nil)
	userRepo.On("GetByID", ctx, userID).Return(user, nil)
	userRepo.On("Update", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "new@store.example" && util.CheckPassword("newsecret", u.PasswordHash)
	})).Return(nil)

	req := &entity.UpdateEmployeeRequest{
		Email:       "new@store.example",
		NewPassword: "newsecret",
	}

	updated, err := svc.UpdateEmployee(ctx, employee.ID, req)

	require.NoError(t, err)
	assert.Equal(t, "new@store.example", updated.Email)
	userRepo.AssertExpectations(t)
}

func TestEmployeeService_UpdateEmployee_NoUserSyncWithoutChanges(t *testing.T) {
	ctx := context.Background()
	svc, employeeRepo, userRepo, _ := newEmployeeService()

	userID := uuid.New()
	employee := &entity.Employee{ID: uuid.New(), Name: "Ivan Petrov", UserID: &userID}

	employeeRepo.On("GetByID", ctx, employee.ID).Return(employee, nil)
	employeeRepo.On("Update", ctx, mock.AnythingOfType("*entity.Employee")).Return(nil)

	_, err := svc.UpdateEmployee(ctx, employee.ID, &entity.UpdateEmployeeRequest{Phone: "+7 900 000-00-01"})

	require.NoError(t, err)
	userRepo.AssertNotCalled(t, "Update")
}

// ===================== DeleteEmployee Tests =====================

func TestEmployeeService_DeleteEmployee_RemovesLinkedUser(t *testing.T) {
	ctx := context.Background()
	svc, employeeRepo, userRepo, _ := newEmployeeService()

	userID := uuid.New()
	employee := &entity.Employee{ID: uuid.New(), UserID: &userID}

	employeeRepo.On("GetByID", ctx, employee.ID).Return(employee, nil)
	employeeRepo.On("Delete", ctx, employee.ID).Return(nil)
	userRepo.On("Delete", ctx, userID).Return(nil)

	err := svc.DeleteEmployee(ctx, employee.ID)

	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestEmployeeService_DeleteEmployee_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, employeeRepo, _, _ := newEmployeeService()

	id := uuid.New()
	employeeRepo.On("GetByID", ctx, id).Return(nil, repository.ErrEmployeeNotFound)

	err := svc.DeleteEmployee(ctx, id)

	assert.ErrorIs(t, err, ErrEmployeeNotFound)
	employeeRepo.AssertNotCalled(t, "Delete")
}
