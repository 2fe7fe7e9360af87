package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/clinicdesk/internal/client/models"
	"github.com/dmitrijs2005/clinicdesk/internal/common"
)

const startTimeLayout = "2006-01-02 15:04"

func (a *App) table(write func(w *tabwriter.Writer)) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	write(tw)
	_ = tw.Flush()
}

func (a *App) Patients(ctx context.Context) error {
	list, err := a.recordsService.Patients(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.printf("No patients\n")
		return nil
	}
	a.table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tNAME\tBORN\tHIS ID")
		for _, p := range list {
			his := "-"
			if p.HISPatientID != nil {
				his = *p.HISPatientID
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.FullName(), p.DateOfBirth, his)
		}
	})
	return nil
}

func (a *App) AddPatient(ctx context.Context) error {
	var np models.NewPatient
	var err error

	if np.FirstName, err = getSimpleText(a.reader, "First name", a.out); err != nil {
		return err
	}
	if np.LastName, err = getSimpleText(a.reader, "Last name", a.out); err != nil {
		return err
	}
	if np.DateOfBirth, err = getSimpleText(a.reader, "Date of birth (YYYY-MM-DD)", a.out); err != nil {
		return err
	}
	if _, perr := time.Parse(time.DateOnly, np.DateOfBirth); perr != nil {
		return fmt.Errorf("%w: date of birth must be YYYY-MM-DD", common.ErrorValidation)
	}

	p, err := a.recordsService.CreatePatient(ctx, np)
	if err != nil {
		return err
	}
	a.printf("Created patient %d (%s)\n", p.ID, p.FullName())
	return nil
}

func (a *App) DeletePatient(ctx context.Context, id string) error {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: patient id must be a number", common.ErrorValidation)
	}
	if err := a.recordsService.DeletePatient(ctx, n); err != nil {
		return err
	}
	a.printf("Deleted patient %d\n", n)
	return nil
}

func (a *App) Practitioners(ctx context.Context) error {
	list, err := a.recordsService.Practitioners(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.printf("No practitioners\n")
		return nil
	}
	a.table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tNAME\tSPECIALIZATION")
		for _, p := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, practitionerName(p), p.Specialization)
		}
	})
	return nil
}

func (a *App) AddPractitioner(ctx context.Context) error {
	var np models.NewPractitioner
	var err error

	if np.FirstName, err = GetRequiredText(a.reader, "First name", a.out); err != nil {
		return err
	}
	if np.MiddleName, err = getSimpleText(a.reader, "Middle name (optional)", a.out); err != nil {
		return err
	}
	if np.LastName, err = GetRequiredText(a.reader, "Last name", a.out); err != nil {
		return err
	}
	if np.Specialization, err = GetRequiredText(a.reader, "Specialization", a.out); err != nil {
		return err
	}

	p, err := a.recordsService.CreatePractitioner(ctx, np)
	if err != nil {
		return err
	}
	a.printf("Created practitioner %s\n", p.ID)
	return nil
}

// Encounters lists all encounters, or one practitioner's when
// practitionerID is set.
func (a *App) Encounters(ctx context.Context, practitionerID string) error {
	var (
		list []models.Encounter
		err  error
	)
	if practitionerID == "" {
		list, err = a.recordsService.Encounters(ctx)
	} else {
		list, err = a.recordsService.EncountersByPractitioner(ctx, practitionerID)
	}
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.printf("No encounters\n")
		return nil
	}
	a.table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tSTART\tPATIENT\tPRACTITIONER\tSTATUS")
		for _, e := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				e.ID, e.StartTime.Local().Format(startTimeLayout), e.PatientName, e.PractitionerName, e.Status)
		}
	})
	return nil
}

func (a *App) AddEncounter(ctx context.Context) error {
	var ne models.NewEncounter

	pid, err := GetRequiredText(a.reader, "Patient ID", a.out)
	if err != nil {
		return err
	}
	if ne.PatientID, err = strconv.ParseInt(pid, 10, 64); err != nil {
		return fmt.Errorf("%w: patient id must be a number", common.ErrorValidation)
	}
	if ne.PractitionerID, err = GetRequiredText(a.reader, "Practitioner ID", a.out); err != nil {
		return err
	}
	start, err := GetRequiredText(a.reader, "Start time (YYYY-MM-DD HH:MM)", a.out)
	if err != nil {
		return err
	}
	if ne.StartTime, err = time.ParseInLocation(startTimeLayout, start, time.Local); err != nil {
		return fmt.Errorf("%w: start time must be YYYY-MM-DD HH:MM", common.ErrorValidation)
	}

	id, err := a.recordsService.CreateEncounter(ctx, ne)
	if err != nil {
		return err
	}
	a.printf("Booked encounter %s\n", id)
	return nil
}

func (a *App) SetStatus(ctx context.Context, id, status string) error {
	if err := a.recordsService.UpdateEncounterStatus(ctx, id, models.EncounterStatus(status)); err != nil {
		return err
	}
	a.printf("Encounter %s is now %s\n", id, status)
	return nil
}

func practitionerName(p models.Practitioner) string {
	name := p.FirstName
	if p.MiddleName != "" {
		name += " " + p.MiddleName
	}
	return name + " " + p.LastName
}
