package main

import (
	"context"
	"fmt"

	"github.com/a-h/summaryform"
)

type VersionCommand struct {
}

func (c VersionCommand) Run(ctx context.Context) (err error) {
	fmt.Println(summaryform.Version)
	return nil
}
