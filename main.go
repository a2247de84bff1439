package main

import (
	"context"

	"github.com/bjulian5/ghprs/cmd"
)

func main() {
	ctx := context.Background()
	cmd.Execute(ctx)
}
