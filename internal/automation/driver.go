package automation

import (
	"context"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"autofill-backend/internal/merge"
	"autofill-backend/internal/schema"
	"autofill-backend/internal/shared/telemetry"
)

// Config bounds one automation run.
type Config struct {
	PortalURL   string
	FormType    string
	StepTimeout time.Duration
	SettleDelay time.Duration
	RunBudget   time.Duration
}

// Driver walks the portal's one-time registration flow and fills it from
// merged application data. One Driver drives one run on one session.
type Driver struct {
	cfg     Config
	session Session
	stage   Stage
	filled  mapset.Set[string]
	written map[string]string
}

func NewDriver(cfg Config, session Session) *Driver {
	return &Driver{
		cfg:     cfg,
		session: session,
		stage:   StageStarting,
		filled:  mapset.NewSet[string](),
		written: make(map[string]string),
	}
}

// Stage reports the phase the driver is currently in.
func (d *Driver) Stage() Stage { return d.stage }

// Run executes the full walk and returns exactly the field values that were
// written into the form, keyed by merged-field name. The run budget caps
// the whole state machine; every individual wait is bounded by StepTimeout.
func (d *Driver) Run(ctx context.Context, data merge.Data) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.RunBudget)
	defer cancel()

	steps := []func(context.Context, merge.Data) error{
		d.navigate,
		d.openEntryPoint,
		d.adoptRegistration,
		d.fillForm,
	}
	for _, step := range steps {
		if err := step(ctx, data); err != nil {
			return nil, err
		}
	}
	d.stage = StageCompleted
	return d.written, nil
}

func (d *Driver) fail(ctx context.Context, field string, err error) error {
	kind := KindLocator
	if ctx.Err() != nil {
		kind = KindCancelled
	}
	return newRunError(d.stage, kind, field, err)
}

func (d *Driver) navigate(ctx context.Context, _ merge.Data) error {
	d.stage = StageNavigating
	if err := d.session.Page().Navigate(ctx, d.cfg.PortalURL); err != nil {
		return d.fail(ctx, "", err)
	}
	return nil
}

// openEntryPoint clicks through the login modal to the registration opener.
func (d *Driver) openEntryPoint(ctx context.Context, _ merge.Data) error {
	d.stage = StageEntryPoint
	page := d.session.Page()

	entry, err := page.WaitFor(ctx, textContainsXPath("Login or Register"), d.cfg.StepTimeout)
	if err != nil {
		return d.fail(ctx, "", err)
	}
	if err := entry.Click(ctx); err != nil {
		return d.fail(ctx, "", err)
	}

	// The registration-number input marks the login modal as active.
	if _, err := page.WaitFor(ctx, placeholderInputXPath("Registration Number"), d.cfg.StepTimeout); err != nil {
		return d.fail(ctx, "", err)
	}
	if err := page.ClickByText(ctx, "Register Now"); err != nil {
		return d.fail(ctx, "", err)
	}
	return nil
}

// adoptRegistration switches to the freshly opened registration page and
// clicks through its intro screen.
func (d *Driver) adoptRegistration(ctx context.Context, _ merge.Data) error {
	d.stage = StageRegistration

	page, err := d.session.AdoptNewestPage(ctx)
	if err != nil {
		return d.fail(ctx, "", err)
	}
	if _, err := page.WaitFor(ctx, textContainsXPath("One Time Registration"), d.cfg.StepTimeout); err != nil {
		return d.fail(ctx, "", err)
	}
	cont, err := page.WaitFor(ctx, buttonXPath("Continue"), d.cfg.StepTimeout)
	if err != nil {
		return d.fail(ctx, "", err)
	}
	if err := cont.Click(ctx); err != nil {
		return d.fail(ctx, "", err)
	}
	return nil
}

func (d *Driver) fillForm(ctx context.Context, data merge.Data) error {
	d.stage = StageFilling
	page := d.session.Page()

	hasAadhaar := data["hasAadhaar"] == "Yes"
	if err := d.clickRadio(ctx, page, data["hasAadhaar"]); err != nil {
		return d.fail(ctx, "hasAadhaar", err)
	}
	d.record("hasAadhaar", data["hasAadhaar"])
	if hasAadhaar {
		if err := d.writeInput(ctx, page, "Enter Your Aadhaar Details", schema.AadhaarNumber, data); err != nil {
			return err
		}
		if err := d.verifyInput(ctx, page, "Verify Aadhaar Details", schema.AadhaarNumber, data); err != nil {
			return err
		}
	}

	if err := d.writeInput(ctx, page, "Candidate Name", schema.CandidateName, data); err != nil {
		return err
	}
	if err := d.verifyInput(ctx, page, "Verify Candidate Name", schema.CandidateName, data); err != nil {
		return err
	}
	if err := d.clickRadio(ctx, page, data["hasChangedName"]); err != nil {
		return d.fail(ctx, "hasChangedName", err)
	}
	d.record("hasChangedName", data["hasChangedName"])

	if err := d.writeDropdown(ctx, page, "Gender", schema.Gender, data); err != nil {
		return err
	}
	if err := d.verifyDropdown(ctx, page, "Verify Gender", schema.Gender, data); err != nil {
		return err
	}

	if err := d.writeDate(ctx, page, "Date Of Birth", schema.DOB, data); err != nil {
		return err
	}
	if err := d.verifyDate(ctx, page, "Verify Date of Birth", schema.DOB, data); err != nil {
		return err
	}

	if err := d.writeInput(ctx, page, "Father's Name", schema.FatherName, data); err != nil {
		return err
	}
	if err := d.verifyInput(ctx, page, "Verify Father's Name", schema.FatherName, data); err != nil {
		return err
	}
	if err := d.writeInput(ctx, page, "Mother's Name", schema.MotherName, data); err != nil {
		return err
	}
	if err := d.verifyInput(ctx, page, "Verify Mother's Name", schema.MotherName, data); err != nil {
		return err
	}

	if err := d.writeDropdown(ctx, page, "Matriculation (10th class) Education Board", schema.EducationBoard, data); err != nil {
		return err
	}
	if err := d.verifyDropdown(ctx, page, "Verify Matriculation (10th class) Education Board", schema.EducationBoard, data); err != nil {
		return err
	}

	if err := d.writeInput(ctx, page, "Roll Number", schema.RollNumber, data); err != nil {
		return err
	}
	if err := d.verifyInput(ctx, page, "Verify Roll Number", schema.RollNumber, data); err != nil {
		return err
	}

	if err := d.writeDropdown(ctx, page, "Year of Passing", schema.YearOfPassing, data); err != nil {
		return err
	}
	if err := d.verifyDropdown(ctx, page, "Verify Year of Passing", schema.YearOfPassing, data); err != nil {
		return err
	}

	if err := d.writeDropdown(ctx, page, "Highest Level of Education", schema.HighestQualification, data); err != nil {
		return err
	}
	if err := d.verifyDropdown(ctx, page, "Verify Highest Level of Education", schema.HighestQualification, data); err != nil {
		return err
	}

	if err := d.writeInput(ctx, page, "Candidate's Mobile Number", schema.MobileNumber, data); err != nil {
		return err
	}
	if err := d.writeInput(ctx, page, "Candidate's Email ID", schema.EmailID, data); err != nil {
		return err
	}

	telemetry.Info("form filled", map[string]any{
		"run_stage":    string(d.stage),
		"fields_count": d.filled.Cardinality(),
	})
	return nil
}

func (d *Driver) writeInput(ctx context.Context, page Page, label, field string, data merge.Data) error {
	if err := d.fillInput(ctx, page, label, data[field]); err != nil {
		return d.fail(ctx, field, err)
	}
	d.record(field, data[field])
	return nil
}

// verifyInput fills a "Verify ..." twin control without recording the field
// twice.
func (d *Driver) verifyInput(ctx context.Context, page Page, label, field string, data merge.Data) error {
	if err := d.fillInput(ctx, page, label, data[field]); err != nil {
		return d.fail(ctx, field, err)
	}
	return nil
}

func (d *Driver) writeDropdown(ctx context.Context, page Page, label, field string, data merge.Data) error {
	if err := d.selectDropdown(ctx, page, label, data[field]); err != nil {
		return d.fail(ctx, field, err)
	}
	d.record(field, data[field])
	return nil
}

func (d *Driver) verifyDropdown(ctx context.Context, page Page, label, field string, data merge.Data) error {
	if err := d.selectDropdown(ctx, page, label, data[field]); err != nil {
		return d.fail(ctx, field, err)
	}
	return nil
}

func (d *Driver) writeDate(ctx context.Context, page Page, label, field string, data merge.Data) error {
	if err := d.fillDate(ctx, page, label, data[field]); err != nil {
		return d.fail(ctx, field, err)
	}
	d.record(field, data[field])
	return nil
}

func (d *Driver) verifyDate(ctx context.Context, page Page, label, field string, data merge.Data) error {
	if err := d.fillDate(ctx, page, label, data[field]); err != nil {
		return d.fail(ctx, field, err)
	}
	return nil
}

func (d *Driver) record(field, value string) {
	if value == "" {
		return
	}
	d.filled.Add(field)
	d.written[field] = value
}
