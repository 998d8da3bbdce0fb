package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storetrack/internal/app/store/entity"
	"storetrack/internal/app/store/repository"
	"storetrack/internal/app/store/util"
	"storetrack/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// employeeChartMonths - глубина графика выручки в карточке сотрудника
const employeeChartMonths = 6

var hundred = decimal.NewFromInt(100)

// EmployeeService управляет сотрудниками и их учетными записями
// При создании сотрудника опционально создается учетная запись для входа,
// при удалении сотрудника привязанная учетная запись удаляется вместе с ним
type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
	userRepo     repository.UserRepository
	saleRepo     repository.SaleRepository
}

// NewEmployeeService создает новый сервис сотрудников с внедрением зависимостей
func NewEmployeeService(
	employeeRepo repository.EmployeeRepository,
	userRepo repository.UserRepository,
	saleRepo repository.SaleRepository,
) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
		saleRepo:     saleRepo,
	}
}

// CreateEmployee создает сотрудника и, если запрошено,
// учетную запись для входа с bcrypt-хэшем пароля
func (s *EmployeeService) CreateEmployee(ctx context.Context, req *entity.CreateEmployeeRequest, now time.Time) (*entity.Employee, error) {
	employee := &entity.Employee{
		ID:         uuid.New(),
		Name:       req.Name,
		Position:   req.Position,
		Phone:      req.Phone,
		Email:      req.Email,
		DateJoined: now,
	}

	if req.CreateUser {
		if _, err := s.userRepo.GetByUsername(ctx, req.Username); err == nil {
			return nil, ErrUsernameTaken
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}

		passwordHash, err := util.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}

		user := &entity.User{
			ID:           uuid.New(),
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: passwordHash,
			CreatedAt:    now,
		}

		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}

		employee.UserID = &user.ID
	}

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	return employee, nil
}

// GetEmployee возвращает карточку сотрудника: последние продажи,
// показатели за все время и выручку за последние 6 месяцев
func (s *EmployeeService) GetEmployee(ctx context.Context, id uuid.UUID, now time.Time) (*entity.EmployeeDetailResponse, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	f := entity.SaleFilter{Now: now, EmployeeID: &employee.ID, Page: 1}

	recentSales, _, err := s.saleRepo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	totalSales, err := s.saleRepo.Count(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to count sales: %w", err)
	}

	totalRevenue, err := s.saleRepo.SumPrice(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to sum sales: %w", err)
	}

	chart, err := s.monthlyRevenueChart(ctx, employee.ID, now)
	if err != nil {
		return nil, err
	}

	return &entity.EmployeeDetailResponse{
		Employee:     *employee,
		RecentSales:  saleRows(recentSales),
		TotalSales:   totalSales,
		TotalRevenue: totalRevenue,
		MonthlyChart: *chart,
	}, nil
}

// ListEmployees возвращает всех сотрудников с показателями продаж
// Доля в общей выручке считается от суммы всех продаж магазина
func (s *EmployeeService) ListEmployees(ctx context.Context, now time.Time) ([]entity.EmployeeRow, error) {
	employees, err := s.employeeRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}

	storeRevenue, err := s.saleRepo.SumPrice(ctx, entity.SaleFilter{Now: now})
	if err != nil {
		return nil, fmt.Errorf("failed to sum sales: %w", err)
	}

	rows := make([]entity.EmployeeRow, 0, len(employees))
	for i := range employees {
		f := entity.SaleFilter{Now: now, EmployeeID: &employees[i].ID}

		count, err := s.saleRepo.Count(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("failed to count sales: %w", err)
		}

		revenue, err := s.saleRepo.SumPrice(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("failed to sum sales: %w", err)
		}

		percentage := 0.0
		if storeRevenue.IsPositive() {
			percentage, _ = revenue.Div(storeRevenue).Mul(hundred).Round(2).Float64()
		}

		rows = append(rows, entity.EmployeeRow{
			Employee:              employees[i],
			SalesCount:            count,
			SalesRevenue:          revenue,
			PerformancePercentage: percentage,
		})
	}

	return rows, nil
}

// UpdateEmployee обновляет данные сотрудника
// Email и новый пароль переносятся на привязанную учетную запись,
// если она существует
func (s *EmployeeService) UpdateEmployee(ctx context.Context, id uuid.UUID, req *entity.UpdateEmployeeRequest) (*entity.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	if req.Name != "" {
		employee.Name = req.Name
	}
	if req.Position != "" {
		employee.Position = req.Position
	}
	if req.Phone != "" {
		employee.Phone = req.Phone
	}
	if req.Email != "" {
		employee.Email = req.Email
	}

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	if employee.UserID != nil && (req.Email != "" || req.NewPassword != "") {
		if err := s.updateLinkedUser(ctx, *employee.UserID, req); err != nil {
			return nil, err
		}
	}

	return employee, nil
}

// DeleteEmployee удаляет сотрудника вместе с привязанной учетной записью
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to get employee: %w", err)
	}

	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	if employee.UserID != nil {
		if err := s.userRepo.Delete(ctx, *employee.UserID); err != nil {
			// Сотрудник уже удален, осиротевшую учетную запись
			// фиксируем в логе
			logger.Error().Err(err).Str("user_id", employee.UserID.String()).Msg("failed to delete linked user")
		}
	}

	return nil
}

// monthlyRevenueChart строит выручку сотрудника по последним месяцам
func (s *EmployeeService) monthlyRevenueChart(ctx context.Context, employeeID uuid.UUID, now time.Time) (*entity.ChartData, error) {
	chart := &entity.ChartData{
		Labels: make([]string, 0, employeeChartMonths),
		Values: make([]float64, 0, employeeChartMonths),
	}

	for i := employeeChartMonths - 1; i >= 0; i-- {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		monthEnd := monthStart.AddDate(0, 1, -1)

		sum, err := s.saleRepo.SumPrice(ctx, entity.SaleFilter{
			Now:        now,
			EmployeeID: &employeeID,
			StartDate:  &monthStart,
			EndDate:    &monthEnd,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to sum sales: %w", err)
		}

		chart.Labels = append(chart.Labels, monthStart.Format("Jan"))
		chart.Values = append(chart.Values, sum.InexactFloat64())
	}

	return chart, nil
}

func (s *EmployeeService) updateLinkedUser(ctx context.Context, userID uuid.UUID, req *entity.UpdateEmployeeRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logger.Warn().Str("user_id", userID.String()).Msg("linked user not found")
			return nil
		}
		return fmt.Errorf("failed to get linked user: %w", err)
	}

	if req.Email != "" {
		user.Email = req.Email
	}
	if req.NewPassword != "" {
		passwordHash, err := util.HashPassword(req.NewPassword)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = passwordHash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update linked user: %w", err)
	}

	return nil
}
