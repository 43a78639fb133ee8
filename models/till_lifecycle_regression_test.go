package models_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/pos_backend/config"
	"bitbucket.org/mmdatafocus/pos_backend/models"
	"bitbucket.org/mmdatafocus/pos_backend/utils"
	"github.com/shopspring/decimal"
)

func setupTillTestContext(t *testing.T) context.Context {
	t.Helper()
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires docker)")
	}

	ctx := context.Background()

	redisName, redisPort := startRedisContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(redisName) })

	mysqlName, mysqlPort := startMySQLContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(mysqlName) })

	t.Setenv("REDIS_ADDRESS", fmt.Sprintf("127.0.0.1:%s", redisPort))
	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASSWORD", "testpw")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", mysqlPort)
	t.Setenv("DB_NAME", "pos_test")
	t.Setenv("TILL_EVENTS_ENABLED", "false")

	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()
	models.MigrateTable()

	ctx = utils.SetUserIdInContext(ctx, 1)
	ctx = utils.SetUserNameInContext(ctx, "Test")
	ctx = utils.SetUsernameInContext(ctx, "test@local")

	company, err := models.CreateCompany(ctx, &models.NewCompany{Name: "Till Lifecycle Co"})
	if err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}
	return utils.SetCompanyIdInContext(ctx, company.ID.String())
}

func createTestSubsidiary(t *testing.T, ctx context.Context, serial string) *models.Subsidiary {
	t.Helper()
	sub, err := models.CreateSubsidiary(ctx, &models.NewSubsidiary{Serial: serial, Name: "Branch " + serial})
	if err != nil {
		t.Fatalf("CreateSubsidiary: %v", err)
	}
	return sub
}

func recordExpense(t *testing.T, ctx context.Context, tillId, subsidiaryId int, method models.PaymentMethod, amount string) *models.Payment {
	t.Helper()
	p, err := models.RecordPayment(ctx, &models.NewPayment{
		TillId:        tillId,
		SubsidiaryId:  subsidiaryId,
		PaymentType:   models.PaymentTypeExpense,
		PaymentMethod: method,
		TotalAmount:   decimal.RequireFromString(amount),
		PaidAmount:    decimal.RequireFromString(amount),
		User:          "cashier",
	})
	if err != nil {
		t.Fatalf("RecordPayment(%s %s): %v", method, amount, err)
	}
	return p
}

func TestCloseTill_ExpectedCoversPaymentsOnly(t *testing.T) {
	ctx := setupTillTestContext(t)
	sub := createTestSubsidiary(t, ctx, "T001")

	till, err := models.OpenTill(ctx, &models.NewTill{
		SubsidiaryId:  sub.ID,
		Name:          "Main",
		OpeningAmount: decimal.NewFromInt(50),
		OpeningUser:   "opener",
	})
	if err != nil {
		t.Fatalf("OpenTill: %v", err)
	}

	recordExpense(t, ctx, till.ID, sub.ID, models.PaymentMethodCash, "30")
	recordExpense(t, ctx, till.ID, sub.ID, models.PaymentMethodCard, "20")

	closed, summary, err := models.CloseTill(ctx, till.ID, decimal.NewFromInt(50), "closer")
	if err != nil {
		t.Fatalf("CloseTill: %v", err)
	}

	// Opening float stays out of expected: 30 + 20 collected, counted 50.
	if !summary.ExpectedAmount.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected expected amount 50, got %s", summary.ExpectedAmount)
	}
	if summary.Difference == nil || !summary.Difference.Equal(decimal.Zero) {
		t.Fatalf("expected zero difference, got %v", summary.Difference)
	}
	if closed.Status != models.TillStatusClosed {
		t.Fatalf("expected closed status, got %q", closed.Status)
	}
	if closed.ExpectedAmount == nil || !closed.ExpectedAmount.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected persisted expected amount 50, got %v", closed.ExpectedAmount)
	}
}

func TestGetOpenTill_NoOpenTillReturnsNil(t *testing.T) {
	ctx := setupTillTestContext(t)
	sub := createTestSubsidiary(t, ctx, "T002")

	till, err := models.GetOpenTill(ctx, sub.ID)
	if err != nil {
		t.Fatalf("expected no error when no till is open, got %v", err)
	}
	if till != nil {
		t.Fatalf("expected nil till, got %+v", till)
	}

	opened, err := models.OpenTill(ctx, &models.NewTill{
		SubsidiaryId:  sub.ID,
		OpeningAmount: decimal.Zero,
		OpeningUser:   "opener",
	})
	if err != nil {
		t.Fatalf("OpenTill: %v", err)
	}
	if _, _, err := models.CloseTill(ctx, opened.ID, decimal.Zero, "closer"); err != nil {
		t.Fatalf("CloseTill: %v", err)
	}

	till, err = models.GetOpenTill(ctx, sub.ID)
	if err != nil || till != nil {
		t.Fatalf("expected nil till after close, got %+v, %v", till, err)
	}
}

func TestCancelPayment_ClosedTillRejected(t *testing.T) {
	ctx := setupTillTestContext(t)
	sub := createTestSubsidiary(t, ctx, "T003")

	till, err := models.OpenTill(ctx, &models.NewTill{
		SubsidiaryId:  sub.ID,
		OpeningAmount: decimal.Zero,
		OpeningUser:   "opener",
	})
	if err != nil {
		t.Fatalf("OpenTill: %v", err)
	}
	payment := recordExpense(t, ctx, till.ID, sub.ID, models.PaymentMethodCash, "10")

	if _, _, err := models.CloseTill(ctx, till.ID, decimal.NewFromInt(10), "closer"); err != nil {
		t.Fatalf("CloseTill: %v", err)
	}

	if _, err := models.CancelPayment(ctx, payment.ID); !errors.Is(err, utils.ErrorInvalidState) {
		t.Fatalf("expected invalid state cancelling into a closed till, got %v", err)
	}

	// The frozen reconciliation must not change: the row stays PAID.
	got, err := models.GetPayment(ctx, payment.ID)
	if err != nil {
		t.Fatalf("GetPayment: %v", err)
	}
	if got.Status != models.PaymentStatusPaid {
		t.Fatalf("expected payment to stay PAID, got %q", got.Status)
	}
}

func TestRecordPayment_IdempotencyKeyReplay(t *testing.T) {
	ctx := setupTillTestContext(t)
	sub := createTestSubsidiary(t, ctx, "T004")

	till, err := models.OpenTill(ctx, &models.NewTill{
		SubsidiaryId:  sub.ID,
		OpeningAmount: decimal.Zero,
		OpeningUser:   "opener",
	})
	if err != nil {
		t.Fatalf("OpenTill: %v", err)
	}

	key := "replay-key-1"
	input := &models.NewPayment{
		TillId:         till.ID,
		SubsidiaryId:   sub.ID,
		PaymentType:    models.PaymentTypeExpense,
		PaymentMethod:  models.PaymentMethodCash,
		TotalAmount:    decimal.NewFromInt(25),
		PaidAmount:     decimal.NewFromInt(25),
		User:           "cashier",
		IdempotencyKey: &key,
	}

	first, err := models.RecordPayment(ctx, input)
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	second, err := models.RecordPayment(ctx, input)
	if err != nil {
		t.Fatalf("RecordPayment replay: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected replay to return payment %d, got %d", first.ID, second.ID)
	}

	payments, err := models.GetPayments(ctx, &till.ID, nil, nil)
	if err != nil {
		t.Fatalf("GetPayments: %v", err)
	}
	if len(payments) != 1 {
		t.Fatalf("expected exactly one payment row, got %d", len(payments))
	}
}

func TestRecordPayment_ClosedTillRejected(t *testing.T) {
	ctx := setupTillTestContext(t)
	sub := createTestSubsidiary(t, ctx, "T005")

	till, err := models.OpenTill(ctx, &models.NewTill{
		SubsidiaryId:  sub.ID,
		OpeningAmount: decimal.Zero,
		OpeningUser:   "opener",
	})
	if err != nil {
		t.Fatalf("OpenTill: %v", err)
	}
	if _, _, err := models.CloseTill(ctx, till.ID, decimal.Zero, "closer"); err != nil {
		t.Fatalf("CloseTill: %v", err)
	}

	_, err = models.RecordPayment(ctx, &models.NewPayment{
		TillId:        till.ID,
		SubsidiaryId:  sub.ID,
		PaymentType:   models.PaymentTypeExpense,
		PaymentMethod: models.PaymentMethodCash,
		TotalAmount:   decimal.NewFromInt(5),
		PaidAmount:    decimal.NewFromInt(5),
		User:          "cashier",
	})
	if !errors.Is(err, utils.ErrorInvalidState) {
		t.Fatalf("expected invalid state recording into a closed till, got %v", err)
	}
}

func startRedisContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("pos-test-redis-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-p", "127.0.0.1:0:6379",
		"redis:7-alpine",
	)
	if err != nil {
		t.Fatalf("start redis container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "6379/tcp")
	if err != nil {
		t.Fatalf("redis docker port: %v", err)
	}
	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "redis-cli", "ping")
		if err == nil {
			return name, port
		}
		time.Sleep(250 * time.Millisecond)
	}
	t.Fatalf("redis did not become ready")
	return "", ""
}

func startMySQLContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("pos-test-mysql-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-e", "MYSQL_ROOT_PASSWORD=testpw",
		"-e", "MYSQL_DATABASE=pos_test",
		"-p", "127.0.0.1:0:3306",
		"mysql:8.0",
		"--default-authentication-plugin=mysql_native_password",
	)
	if err != nil {
		t.Fatalf("start mysql container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "3306/tcp")
	if err != nil {
		t.Fatalf("mysql docker port: %v", err)
	}
	deadline := time.Now().Add(120 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "mysqladmin", "ping", "-h", "127.0.0.1", "-ptestpw", "--silent")
		if err == nil {
			return name, port
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("mysql did not become ready")
	return "", ""
}

func dockerHostPort(container, portProto string) (string, error) {
	out, err := dockerRun("port", container, portProto)
	if err != nil {
		return "", fmt.Errorf("docker port: %w: %s", err, out)
	}
	re := regexp.MustCompile(`:(\d+)`)
	m := re.FindStringSubmatch(out)
	if len(m) != 2 {
		return "", fmt.Errorf("unexpected docker port output: %q", out)
	}
	return m[1], nil
}

func dockerRmForce(container string) error {
	if strings.TrimSpace(container) == "" {
		return nil
	}
	_, err := dockerRun("rm", "-f", container)
	return err
}

func dockerRun(args ...string) (string, error) {
	cmd := exec.Command("docker", args...)
	b, err := cmd.CombinedOutput()
	return string(b), err
}
