package cmd

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/df07/go-bvh-raytracer/pkg/config"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
)

// InspectScene builds the scene hierarchy with every split policy and
// prints their statistics side by side
func InspectScene(ctx *cli.Context) error {
	logger, err := newLogger(ctx)
	if err != nil {
		return err
	}
	defer syncLogger(logger)

	c, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	return inspect(ctx.App.Writer, c, logger)
}

func inspect(w io.Writer, c config.RenderConfig, logger *zap.Logger) error {
	policies := []geometry.SplitPolicy{geometry.SplitMidpoint, geometry.SplitSAH}
	stats := make([]geometry.BVHStats, len(policies))
	unbounded := 0
	for i, policy := range policies {
		s, err := buildScene(c, policy, logger)
		if err != nil {
			return err
		}
		s.SetTime(c.Time)
		stats[i] = s.BVH().Stats()
		unbounded = s.UnboundedCount()
	}

	fmt.Fprintf(w, "scene %q: %d bounded primitives, %d planes outside the BVH\n",
		c.Scene, stats[0].Primitives, unbounded)

	table := tablewriter.NewWriter(w)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetAutoFormatHeaders(false)
	header := []string{"Statistic"}
	for _, p := range policies {
		header = append(header, p.String())
	}
	table.SetHeader(header)

	rows := []struct {
		name  string
		value func(geometry.BVHStats) string
	}{
		{"Nodes", func(s geometry.BVHStats) string { return fmt.Sprint(s.TotalNodes) }},
		{"Leaves", func(s geometry.BVHStats) string { return fmt.Sprint(s.LeafNodes) }},
		{"Max depth", func(s geometry.BVHStats) string { return fmt.Sprint(s.MaxDepth) }},
		{"Leaf depth", func(s geometry.BVHStats) string {
			return fmt.Sprintf("%.2f ± %.2f", s.AvgLeafDepth, s.LeafDepthStd)
		}},
		{"Prims per leaf", func(s geometry.BVHStats) string {
			return fmt.Sprintf("%.2f (max %d)", s.AvgLeafPrims, s.MaxLeafPrims)
		}},
		{"SAH cost", func(s geometry.BVHStats) string { return fmt.Sprintf("%.3f", s.SAHCost) }},
	}
	for _, row := range rows {
		line := []string{row.name}
		for _, s := range stats {
			line = append(line, row.value(s))
		}
		table.Append(line)
	}
	table.Render()
	return nil
}
