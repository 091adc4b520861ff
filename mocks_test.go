package admissions_test

import (
	"context"
	"database/sql"
	"io"
	"mime/multipart"

	admissions "github.com/goliatone/go-admissions"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"
)

type testLogger struct{}

func (testLogger) Debug(string, ...any) {}
func (testLogger) Info(string, ...any)  {}
func (testLogger) Error(string, ...any) {}

// MockRepositoryManager implements admissions.RepositoryManager
type MockRepositoryManager struct {
	mock.Mock
}

func (m *MockRepositoryManager) Validate() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockRepositoryManager) MustValidate() {
	m.Called()
}

func (m *MockRepositoryManager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(context.Context, bun.Tx) error) error {
	args := m.Called(ctx, opts, f)
	return args.Error(0)
}

func (m *MockRepositoryManager) Applications() admissions.Applications {
	args := m.Called()
	return args.Get(0).(admissions.Applications)
}

func (m *MockRepositoryManager) TeacherProfiles() admissions.TeacherProfiles {
	args := m.Called()
	return args.Get(0).(admissions.TeacherProfiles)
}

// MockApplications implements admissions.Applications. The embedded interface
// satisfies the generic repository surface; only the methods the workflows
// touch are stubbed.
type MockApplications struct {
	mock.Mock
	repository.Repository[*admissions.Application]
}

func (m *MockApplications) GetByID(ctx context.Context, id string, criteria ...repository.SelectCriteria) (*admissions.Application, error) {
	args := m.Called(ctx, id, criteria)
	if record, ok := args.Get(0).(*admissions.Application); ok {
		return record, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockApplications) MarkReviewedTx(ctx context.Context, tx bun.IDB, id string, record *admissions.Application) (*admissions.Application, error) {
	args := m.Called(ctx, tx, id, record)
	if updated, ok := args.Get(0).(*admissions.Application); ok {
		return updated, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockApplications) Purge(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTeacherProfiles implements admissions.TeacherProfiles
type MockTeacherProfiles struct {
	mock.Mock
}

func (m *MockTeacherProfiles) GetByUID(ctx context.Context, uid uuid.UUID) (*admissions.TeacherProfile, error) {
	args := m.Called(ctx, uid)
	if record, ok := args.Get(0).(*admissions.TeacherProfile); ok {
		return record, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTeacherProfiles) GetByUIDTx(ctx context.Context, tx bun.IDB, uid uuid.UUID) (*admissions.TeacherProfile, error) {
	args := m.Called(ctx, tx, uid)
	if record, ok := args.Get(0).(*admissions.TeacherProfile); ok {
		return record, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTeacherProfiles) UpsertTx(ctx context.Context, tx bun.IDB, record *admissions.TeacherProfile) (*admissions.TeacherProfile, error) {
	args := m.Called(ctx, tx, record)
	if updated, ok := args.Get(0).(*admissions.TeacherProfile); ok {
		return updated, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockIdentityProvider implements admissions.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) CreateIdentity(ctx context.Context, email, password, displayName string) (*admissions.IdentityRecord, error) {
	args := m.Called(ctx, email, password, displayName)
	if record, ok := args.Get(0).(*admissions.IdentityRecord); ok {
		return record, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockIdentityProvider) FindIdentityByEmail(ctx context.Context, email string) (*admissions.IdentityRecord, error) {
	args := m.Called(ctx, email)
	if record, ok := args.Get(0).(*admissions.IdentityRecord); ok {
		return record, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockIdentityProvider) UpdateIdentity(ctx context.Context, uid uuid.UUID, update admissions.IdentityUpdate) (*admissions.IdentityRecord, error) {
	args := m.Called(ctx, uid, update)
	if record, ok := args.Get(0).(*admissions.IdentityRecord); ok {
		return record, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockActivitySink implements admissions.ActivitySink
type MockActivitySink struct {
	mock.Mock
}

func (m *MockActivitySink) Record(ctx context.Context, evt admissions.ActivityEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

// MockContext mocks router.Context
type MockContext struct {
	mock.Mock
	NextCalled bool
}

func (m *MockContext) Next() error {
	m.NextCalled = true
	return nil
}

func (m *MockContext) Context() context.Context {
	args := m.Called()
	c, ok := args.Get(0).(context.Context)
	if !ok {
		panic("arg needs to be context.Context")
	}
	return c
}

func (m *MockContext) SetContext(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockContext) Path() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) Method() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) Body() []byte {
	args := m.Called()
	return args.Get(0).([]byte)
}

func (m *MockContext) Status(code int) router.Context {
	m.Called(code)
	return m
}

func (m *MockContext) SendString(s string) error {
	args := m.Called(s)
	return args.Error(0)
}

func (m *MockContext) Send(b []byte) error {
	args := m.Called(b)
	return args.Error(0)
}

func (m *MockContext) JSON(code int, val any) error {
	args := m.Called(code, val)
	return args.Error(0)
}

func (m *MockContext) NoContent(code int) error {
	args := m.Called(code)
	return args.Error(0)
}

func (m *MockContext) Render(name string, bind any, layout ...string) error {
	if len(layout) > 0 {
		args := m.Called(name, bind, layout[0])
		return args.Error(0)
	}
	args := m.Called(name, bind)
	return args.Error(0)
}

func (m *MockContext) Redirect(path string, status ...int) error {
	if len(status) > 0 {
		args := m.Called(path, status)
		return args.Error(0)
	}
	args := m.Called(path)
	return args.Error(0)
}

func (m *MockContext) RedirectToRoute(name string, data router.ViewContext, status ...int) error {
	if len(status) > 0 {
		args := m.Called(name, data, status[0])
		return args.Error(0)
	}
	args := m.Called(name, data)
	return args.Error(0)
}

func (m *MockContext) RedirectBack(fallback string, status ...int) error {
	if len(status) > 0 {
		args := m.Called(fallback, status)
		return args.Error(0)
	}
	args := m.Called(fallback)
	return args.Error(0)
}

func (m *MockContext) SetHeader(key, val string) router.Context {
	m.Called(key, val)
	return m
}

func (m *MockContext) Header(key string) string {
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) Get(key string, defaultValue any) any {
	args := m.Called(key, defaultValue)
	return args.Get(0)
}

func (m *MockContext) GetBool(key string, defaultValue bool) bool {
	args := m.Called(key, defaultValue)
	return args.Bool(0)
}

func (m *MockContext) GetInt(key string, def int) int {
	args := m.Called(key, def)
	return args.Int(0)
}

func (m *MockContext) Set(key string, val any) {
	m.Called(key, val)
}

func (m *MockContext) Bind(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) BindJSON(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) BindXML(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) BindQuery(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) CookieParser(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) Cookie(cookie *router.Cookie) {
	m.Called(cookie)
}

func (m *MockContext) Cookies(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		args := m.Called(key, defaultValue[0])
		return args.String(0)
	}
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) Param(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		args := m.Called(key, defaultValue[0])
		return args.String(0)
	}
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) ParamsInt(key string, defaultValue int) int {
	args := m.Called(key, defaultValue)
	return args.Int(0)
}

func (m *MockContext) Query(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		args := m.Called(key, defaultValue[0])
		return args.String(0)
	}
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) QueryValues(key string) []string {
	args := m.Called(key)
	if values, ok := args.Get(0).([]string); ok {
		return values
	}
	return nil
}

func (m *MockContext) QueryInt(key string, defaultValue int) int {
	args := m.Called(key, defaultValue)
	return args.Int(0)
}

func (m *MockContext) Queries() map[string]string {
	args := m.Called()
	return args.Get(0).(map[string]string)
}

func (m *MockContext) GetString(key string, defaultValue string) string {
	args := m.Called(key, defaultValue)
	return args.String(0)
}

func (m *MockContext) Locals(key any, value ...any) any {
	if len(value) > 0 {
		m.Called(key, value[0])
		return nil
	}
	args := m.Called(key)
	return args.Get(0)
}

func (m *MockContext) OriginalURL() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) OnNext(callback func() error) {
	m.Called(callback)
}

func (m *MockContext) Referer() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) LocalsMerge(key any, value map[string]any) map[string]any {
	args := m.Called(key, value)
	if merged, ok := args.Get(0).(map[string]any); ok {
		return merged
	}
	return nil
}

func (m *MockContext) FormFile(key string) (*multipart.FileHeader, error) {
	args := m.Called(key)
	if header, ok := args.Get(0).(*multipart.FileHeader); ok {
		return header, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockContext) FormValue(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		args := m.Called(key, defaultValue[0])
		return args.String(0)
	}
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) IP() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) SendStatus(code int) error {
	args := m.Called(code)
	return args.Error(0)
}

func (m *MockContext) SendStream(r io.Reader) error {
	args := m.Called(r)
	return args.Error(0)
}

func (m *MockContext) RouteName() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) RouteParams() map[string]string {
	args := m.Called()
	if params, ok := args.Get(0).(map[string]string); ok {
		return params
	}
	return nil
}
