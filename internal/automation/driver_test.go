package automation

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autofill-backend/internal/merge"
	"autofill-backend/internal/schema"
)

type fakeControl struct {
	page  *fakePage
	xpath string
}

func (c *fakeControl) op(name string) error {
	c.page.ops = append(c.page.ops, name+" "+c.xpath)
	return nil
}

func (c *fakeControl) ScrollIntoView(ctx context.Context) error { return c.op("scroll") }
func (c *fakeControl) Click(ctx context.Context) error          { return c.op("click") }
func (c *fakeControl) Clear(ctx context.Context) error          { return c.op("clear") }
func (c *fakeControl) Type(ctx context.Context, value string) error {
	return c.op("type:" + value)
}
func (c *fakeControl) SetValueWithEvent(ctx context.Context, value string) error {
	return c.op("set:" + value)
}

type fakePage struct {
	name         string
	ops          []string
	failOn       []string
	navErrs      []error
	options      []string
	clickTextErr error
}

func (p *fakePage) Navigate(ctx context.Context, url string) error {
	p.ops = append(p.ops, "navigate "+url)
	if len(p.navErrs) > 0 {
		err := p.navErrs[0]
		p.navErrs = p.navErrs[1:]
		return err
	}
	return nil
}

func (p *fakePage) WaitFor(ctx context.Context, xpath string, timeout time.Duration) (Control, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, frag := range p.failOn {
		if strings.Contains(xpath, frag) {
			return nil, fmt.Errorf("no element for %s", xpath)
		}
	}
	p.ops = append(p.ops, "wait "+xpath)
	return &fakeControl{page: p, xpath: xpath}, nil
}

func (p *fakePage) ClickByText(ctx context.Context, text string) error {
	p.ops = append(p.ops, "clickText "+text)
	return p.clickTextErr
}

func (p *fakePage) Texts(ctx context.Context, xpath string) ([]string, error) {
	p.ops = append(p.ops, "texts "+xpath)
	return p.options, nil
}

type fakeSession struct {
	first   *fakePage
	second  *fakePage
	adopted bool
	closed  bool
}

func (s *fakeSession) Page() Page {
	if s.second != nil && s.adopted {
		return s.second
	}
	return s.first
}

func (s *fakeSession) AdoptNewestPage(ctx context.Context) (Page, error) {
	s.adopted = true
	return s.second, nil
}

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		first:  &fakePage{name: "portal"},
		second: &fakePage{name: "registration"},
	}
}

func testConfig() Config {
	return Config{
		PortalURL:   "https://portal.example/",
		FormType:    "SSC OTR",
		StepTimeout: 50 * time.Millisecond,
		SettleDelay: time.Millisecond,
		RunBudget:   5 * time.Second,
	}
}

func fullData() merge.Data {
	return merge.Data{
		schema.CandidateName:        "Ram Singh",
		schema.FatherName:           "Shyam Lal",
		schema.MotherName:           "Sita Devi",
		schema.Gender:               "Male",
		schema.DOB:                  "01/01/2000",
		schema.AadhaarNumber:        "123412341234",
		schema.EducationBoard:       "CBSE",
		schema.RollNumber:           "R-42",
		schema.YearOfPassing:        "2018",
		schema.HighestQualification: "Graduation",
		schema.MobileNumber:         "9876543210",
		schema.EmailID:              "ram@example.com",
		"hasAadhaar":                "Yes",
		"hasChangedName":            "No",
	}
}

func TestDriverRunFillsWholeForm(t *testing.T) {
	session := newFakeSession()
	driver := NewDriver(testConfig(), session)

	written, err := driver.Run(context.Background(), fullData())
	require.NoError(t, err)
	assert.Equal(t, StageCompleted, driver.Stage())

	assert.Equal(t, "Ram Singh", written[schema.CandidateName])
	assert.Equal(t, "Shyam Lal", written[schema.FatherName])
	assert.Equal(t, "123412341234", written[schema.AadhaarNumber])
	assert.Equal(t, "Yes", written["hasAadhaar"])
	assert.Equal(t, "ram@example.com", written[schema.EmailID])

	joined := strings.Join(session.first.ops, "\n")
	assert.Contains(t, joined, "navigate https://portal.example/")
	assert.Contains(t, joined, "Login or Register")
	assert.Contains(t, joined, "clickText Register Now")

	regOps := strings.Join(session.second.ops, "\n")
	assert.Contains(t, regOps, "One Time Registration")
	assert.Contains(t, regOps, "Candidate Name")
	assert.Contains(t, regOps, "set:01/01/2000")
	assert.Contains(t, regOps, "type:9876543210")
}

func TestDriverSkipsAbsentFieldsAndAadhaarInputs(t *testing.T) {
	data := fullData()
	data["hasAadhaar"] = "No"
	delete(data, schema.AadhaarNumber)
	delete(data, schema.MotherName)

	session := newFakeSession()
	driver := NewDriver(testConfig(), session)

	written, err := driver.Run(context.Background(), data)
	require.NoError(t, err)

	_, hasAadhaarNumber := written[schema.AadhaarNumber]
	assert.False(t, hasAadhaarNumber)
	assert.Equal(t, "No", written["hasAadhaar"])

	regOps := strings.Join(session.second.ops, "\n")
	assert.NotContains(t, regOps, "Enter Your Aadhaar Details")
	// Mother's Name control is not even located when the value is absent.
	assert.NotContains(t, regOps, `type:Sita Devi`)
}

func TestDriverDropdownFallbackFoldsOptionText(t *testing.T) {
	session := newFakeSession()
	// The portal renders the board name with different casing and padding
	// than the merged value, so the literal option locator never matches.
	session.second.failOn = []string{`li[contains(normalize-space(), "CBSE")]`}
	session.second.options = []string{"ICSE", "  cbse ", "State Board"}
	driver := NewDriver(testConfig(), session)

	written, err := driver.Run(context.Background(), fullData())
	require.NoError(t, err)
	assert.Equal(t, "CBSE", written[schema.EducationBoard])

	regOps := strings.Join(session.second.ops, "\n")
	assert.Contains(t, regOps, "texts "+dropdownItemsXPath)
	assert.Contains(t, regOps, "wait "+dropdownItemAtXPath(2))
}

func TestDriverDropdownUnmatchedOptionFails(t *testing.T) {
	session := newFakeSession()
	session.second.failOn = []string{`li[contains(normalize-space(), "CBSE")]`}
	session.second.options = []string{"ICSE", "State Board"}
	driver := NewDriver(testConfig(), session)

	_, err := driver.Run(context.Background(), fullData())
	var runErr *RunError
	require.ErrorAs(t, err, &runErr)
	assert.Equal(t, StageFilling, runErr.Stage)
	assert.Equal(t, KindLocator, runErr.Kind)
	assert.Equal(t, schema.EducationBoard, runErr.Field)
}

func TestDriverLocatorFailureNamesStageAndField(t *testing.T) {
	session := newFakeSession()
	session.second.failOn = []string{"Father's Name"}
	driver := NewDriver(testConfig(), session)

	_, err := driver.Run(context.Background(), fullData())
	require.Error(t, err)

	var runErr *RunError
	require.ErrorAs(t, err, &runErr)
	assert.Equal(t, StageFilling, runErr.Stage)
	assert.Equal(t, KindLocator, runErr.Kind)
	assert.Equal(t, schema.FatherName, runErr.Field)
}

func TestDriverMissingRegisterNowFailsAtEntryPoint(t *testing.T) {
	session := newFakeSession()
	session.first.clickTextErr = fmt.Errorf(`no element with text "Register Now"`)
	driver := NewDriver(testConfig(), session)

	_, err := driver.Run(context.Background(), fullData())
	var runErr *RunError
	require.ErrorAs(t, err, &runErr)
	assert.Equal(t, StageEntryPoint, runErr.Stage)
	assert.Equal(t, KindLocator, runErr.Kind)
}

func TestDriverEntryPointFailure(t *testing.T) {
	session := newFakeSession()
	session.first.failOn = []string{"Login or Register"}
	driver := NewDriver(testConfig(), session)

	_, err := driver.Run(context.Background(), fullData())
	var runErr *RunError
	require.ErrorAs(t, err, &runErr)
	assert.Equal(t, StageEntryPoint, runErr.Stage)
	assert.Equal(t, KindLocator, runErr.Kind)
}

func TestDriverCancelledRun(t *testing.T) {
	session := newFakeSession()
	driver := NewDriver(testConfig(), session)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := driver.Run(ctx, fullData())
	var runErr *RunError
	require.ErrorAs(t, err, &runErr)
	assert.Equal(t, KindCancelled, runErr.Kind)
	assert.NotNil(t, runErr.Err)
}

func TestFoldText(t *testing.T) {
	assert.Equal(t, "male", foldText("  Male "))
	assert.Equal(t, "bihar board", foldText("Bihār   Board"))
	assert.Equal(t, "cbse", foldText("CBSE"))
}
