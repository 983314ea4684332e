package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophwallet/internal/models"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func (a *App) Tags(ctx context.Context, _ []string) error {
	tags, err := a.store.ListTags(ctx)
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		a.println("No tags.")
	}
	for _, t := range tags {
		a.printf("%4d %s %s\n", t.ID, formatColor(t.Color), t.Name)
	}
	return nil
}

func (a *App) AddTag(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errUsage
	}
	tag := models.Tag{Name: args[0], Color: int32(-0x1000000)} // opaque black
	if len(args) == 2 {
		c, err := parseColor(args[1])
		if err != nil {
			return err
		}
		tag.Color = c
	}
	id, err := a.store.InsertTag(ctx, tag)
	if err != nil {
		return err
	}
	a.printf("Tag %s created with id %d\n", tag.Name, id)
	return nil
}

func (a *App) DeleteTag(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return a.store.DeleteTag(ctx, id)
}

func (a *App) TagPass(ctx context.Context, args []string) error {
	return a.withPassAndTag(ctx, args, a.store.Tag)
}

func (a *App) UntagPass(ctx context.Context, args []string) error {
	return a.withPassAndTag(ctx, args, a.store.Untag)
}

func (a *App) withPassAndTag(ctx context.Context, args []string, fn func(context.Context, string, int64) error) error {
	if len(args) != 2 {
		return errUsage
	}
	p, err := a.resolvePass(ctx, args[0])
	if err != nil {
		return err
	}
	tagID, err := parseID(args[1])
	if err != nil {
		return err
	}
	return fn(ctx, p.Pass.ID, tagID)
}

func (a *App) Groups(ctx context.Context, _ []string) error {
	groups, err := a.store.Groups(ctx)
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		a.println("No groups.")
	}
	for _, g := range groups {
		a.printf("%4d %s", g.ID, g.Name)
		if g.Description != "" {
			a.printf(" - %s", g.Description)
		}
		a.println()
	}
	return nil
}

func (a *App) AddGroup(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errUsage
	}
	g := models.PassGroup{Name: args[0], Description: strings.Join(args[1:], " ")}
	id, err := a.store.InsertGroup(ctx, g)
	if err != nil {
		return err
	}
	a.printf("Group %s created with id %d\n", g.Name, id)
	return nil
}

func (a *App) DeleteGroup(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return a.store.DeleteGroup(ctx, id)
}

func (a *App) GroupPass(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	p, err := a.resolvePass(ctx, args[0])
	if err != nil {
		return err
	}
	gid, err := parseID(args[1])
	if err != nil {
		return err
	}
	return a.store.Associate(ctx, p.Pass.ID, gid)
}

func (a *App) UngroupPass(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	p, err := a.resolvePass(ctx, args[0])
	if err != nil {
		return err
	}
	return a.store.Dissociate(ctx, p.Pass.ID)
}
