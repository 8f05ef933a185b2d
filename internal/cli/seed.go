package cli

import (
	"math/rand"
	"time"

	"github.com/julianstephens/nicolog/internal/sample"
)

type SeedCmd struct {
	Days int   `help:"Days of history to generate." default:"14"`
	Seed int64 `help:"Random seed; 0 picks one from the clock."`
}

func (c *SeedCmd) Run(ctx *Context) error {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	added, err := sample.Seed(ctx.Store, c.Days, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}
	if added == 0 {
		ctx.println("Storage already has entries; nothing seeded.")
		return nil
	}
	ctx.printf("✓ Seeded %d sample entries\n", added)
	return nil
}
