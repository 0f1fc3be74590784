package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/timeflow/internal/client/models"
	"github.com/dmitrijs2005/timeflow/internal/client/services"
	"github.com/dmitrijs2005/timeflow/internal/client/storage"
)

const plansExportName = "plans.json"

type plansTab struct {
	svc     services.PlanService
	console *Console
	picker  storage.FilePicker
}

// NewPlansTab returns the factory of the plans tab.
func NewPlansTab(svc services.PlanService, picker storage.FilePicker) Factory {
	return func(ctx context.Context, c *Console) (Tab, error) {
		t := &plansTab{svc: svc, console: c, picker: picker}
		if err := t.list(ctx, nil); err != nil {
			return nil, err
		}
		return t, nil
	}
}

func (t *plansTab) Help() string {
	return "Plans: list [long|mid|short], add <long|mid|short>, delete <type> <id>, export, import"
}

func (t *plansTab) Exec(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "list", "l":
		return t.list(ctx, args)
	case "add":
		return t.add(ctx, args)
	case "delete", "rm":
		return t.delete(ctx, args)
	case "export":
		return t.export(ctx)
	case "import":
		return t.importPlans(ctx)
	default:
		return errUnknownCommand
	}
}

func (t *plansTab) list(ctx context.Context, args []string) error {
	plans, err := t.svc.GetAllPlans(ctx)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		pt, err := planType(args[0])
		if err != nil {
			return err
		}
		t.console.Println(renderPlans(plans, pt))
		return nil
	}
	t.console.Println(renderPlans(plans))
	return nil
}

func (t *plansTab) add(ctx context.Context, args []string) error {
	if len(args) == 0 {
		t.console.Println("Usage: add <long|mid|short>")
		return nil
	}
	pt, err := planType(args[0])
	if err != nil {
		return err
	}

	var p models.Plan
	if p.Title, err = t.console.Ask("Title"); err != nil {
		return err
	}
	if p.Description, err = t.console.Ask("Description (optional)"); err != nil {
		return err
	}
	if p.StartDate, err = t.console.Ask("Start date YYYY-MM-DD (optional)"); err != nil {
		return err
	}
	if p.EndDate, err = t.console.Ask("End date YYYY-MM-DD (optional)"); err != nil {
		return err
	}

	added, err := t.svc.Add(ctx, pt, p)
	if err != nil {
		return err
	}
	t.console.Println(successStyle.Render(fmt.Sprintf("Plan added (#%s).", added.ID)))
	return nil
}

func (t *plansTab) delete(ctx context.Context, args []string) error {
	if len(args) < 2 {
		t.console.Println("Usage: delete <type> <id>")
		return nil
	}
	pt, err := planType(args[0])
	if err != nil {
		return err
	}
	ok, err := t.console.Confirm(ctx, "Delete this plan?")
	if err != nil || !ok {
		return err
	}
	if err := t.svc.Delete(ctx, pt, args[1]); err != nil {
		return err
	}
	t.console.Println(successStyle.Render("Plan deleted."))
	return nil
}

func (t *plansTab) export(ctx context.Context) error {
	data, err := t.svc.Export(ctx)
	if err != nil {
		return err
	}
	path, err := exportFile(ctx, t.picker, plansExportName, data)
	if errors.Is(err, errCancelled) {
		t.console.Println("Cancelled.")
		return nil
	}
	if err != nil {
		return err
	}
	t.console.Println(successStyle.Render("Plans exported to " + path + "."))
	return nil
}

func (t *plansTab) importPlans(ctx context.Context) error {
	raw, merge, err := importFile(ctx, t.console, t.picker, "plans")
	if errors.Is(err, errCancelled) {
		t.console.Println("Cancelled.")
		return nil
	}
	if err != nil {
		return err
	}
	if err := t.svc.ImportPlans(ctx, raw, merge); err != nil {
		return fmt.Errorf("failed to import plans: %w", err)
	}
	t.console.Println(successStyle.Render("Plans " + importVerb(merge) + "."))
	return nil
}

func planType(s string) (models.PlanType, error) {
	pt, ok := models.ParsePlanType(s)
	if !ok {
		return "", fmt.Errorf("%w: %q", services.ErrUnknownPlanType, s)
	}
	return pt, nil
}
