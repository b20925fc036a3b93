package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/docsim/internal/filex"
	"github.com/dmitrijs2005/docsim/internal/services"
)

// Duplicate-upload choices.
const (
	choicePath   = "path"
	choiceOpen   = "open"
	choiceCancel = "cancel"
)

func (a *App) Upload(ctx context.Context, path string) error {
	p, err := a.principal(ctx)
	if err != nil {
		return a.report(ctx, "upload", err)
	}

	name, content, err := filex.ReadText(path)
	if err != nil {
		return a.report(ctx, "upload", err)
	}

	return a.save(ctx, p, name, content)
}

func (a *App) Fetch(ctx context.Context, url string) error {
	p, err := a.principal(ctx)
	if err != nil {
		return a.report(ctx, "fetch", err)
	}

	name, content, err := a.fetcher.FetchText(ctx, url)
	if err != nil {
		return a.report(ctx, "fetch", err)
	}

	return a.save(ctx, p, name, content)
}

// save stores the document or, when the name is taken, lets the user look
// at the existing one instead. Nothing is ever overwritten.
func (a *App) save(ctx context.Context, p *services.Principal, name, content string) error {
	doc, err := a.docs.Save(ctx, p, name, content)
	if err == nil {
		printlnFn(okColor.Sprintf("Saved %s as #%d.", doc.Name, doc.ID))
		return nil
	}

	var dup *services.DuplicateDocumentError
	if !errors.As(err, &dup) {
		return a.report(ctx, "upload", err)
	}

	printlnFn(fmt.Sprintf("You already have a document named %q.", dup.Existing.Name))
	choice, cerr := GetChoice(a.reader, "Show its path, open it, or cancel?", []string{choicePath, choiceOpen, choiceCancel}, a.out)
	if cerr != nil {
		return cerr
	}

	switch choice {
	case choicePath:
		printlnFn(dup.Existing.Path)
	case choiceOpen:
		printlnFn(formatDocument(dup.Existing))
		printlnFn(dup.Existing.Content)
	default:
		printlnFn("Upload cancelled.")
	}
	return err
}

func (a *App) List(ctx context.Context) error {
	p, err := a.principal(ctx)
	if err != nil {
		return a.report(ctx, "list", err)
	}

	entries, err := a.docs.Similarities(ctx, p)
	if err != nil {
		return a.report(ctx, "list", err)
	}

	for _, line := range renderReport(entries) {
		printlnFn(line)
	}
	return nil
}

func (a *App) Show(ctx context.Context, name string) error {
	p, err := a.principal(ctx)
	if err != nil {
		return a.report(ctx, "show", err)
	}

	doc, err := a.docs.GetByName(ctx, p, name)
	if err != nil {
		return a.report(ctx, "show", err)
	}

	printlnFn(formatDocument(doc))
	printlnFn(doc.Content)
	return nil
}

func (a *App) Delete(ctx context.Context, arg string) error {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		printlnFn("Usage: delete <id>")
		return err
	}

	p, err := a.principal(ctx)
	if err != nil {
		return a.report(ctx, "delete", err)
	}

	if err := a.docs.Delete(ctx, p, id); err != nil {
		return a.report(ctx, "delete", err)
	}

	printlnFn(fmt.Sprintf("Deleted #%d.", id))
	return nil
}
