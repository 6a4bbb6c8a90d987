package rl

import (
	"fmt"
	"os"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// String returns the human-readable dump printed at the end of an
// evaluation run.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Average Profit per Product: %.2f\n", r.MeanProfit)
	fmt.Fprintf(&b, "Average Revenue per Product: %.2f\n", r.MeanRevenue)
	fmt.Fprintf(&b, "%10s %8s %10s %8s %12s %12s\n", "product", "action", "price", "orders", "revenue", "profit")
	for _, res := range r.Results {
		fmt.Fprintf(&b, "%10d %8.2f %10.2f %8d %12.2f %12.2f\n",
			res.ProductID, res.Action, res.Price, res.Orders, res.Revenue, res.Profit)
	}
	return b.String()
}

// WriteCSV saves the per-product results to a CSV file.
func (r *Report) WriteCSV(savePath string) error {
	var b strings.Builder
	b.WriteString("product_id,action,predicted_price,predicted_orders,predicted_revenue,predicted_profit\n")
	for _, res := range r.Results {
		fmt.Fprintf(&b, "%d,%f,%f,%d,%f,%f\n",
			res.ProductID, res.Action, res.Price, res.Orders, res.Revenue, res.Profit)
	}
	return os.WriteFile(savePath, []byte(b.String()), 0644)
}

// SavePlot renders per-product predicted profit and revenue as lines over
// the product index and saves the chart as a png.
func (r *Report) SavePlot(plotPath string) error {
	p := plot.New()
	p.Title.Text = "Offline evaluation"
	p.X.Label.Text = "Product"
	p.Y.Label.Text = "Predicted value"

	profits := make(plotter.XYs, len(r.Results))
	revenues := make(plotter.XYs, len(r.Results))
	for i, res := range r.Results {
		profits[i] = plotter.XY{X: float64(i), Y: res.Profit}
		revenues[i] = plotter.XY{X: float64(i), Y: res.Revenue}
	}

	profitLine, err := plotter.NewLine(profits)
	if err != nil {
		return err
	}
	profitLine.Color = plotutil.Color(0)
	p.Add(profitLine)
	p.Legend.Add("profit", profitLine)

	revenueLine, err := plotter.NewLine(revenues)
	if err != nil {
		return err
	}
	revenueLine.Color = plotutil.Color(1)
	p.Add(revenueLine)
	p.Legend.Add("revenue", revenueLine)

	return p.Save(8*vg.Inch, 8*vg.Inch, plotPath)
}
