// Package render turns bytestats results into images.
//
// Every function here is a pure transform from a computed statistic to an
// image.Image; nothing is drawn on screen. The CLI writes the images to disk
// with Save, which picks the encoder from the file extension.
//
// # Views
//
//   - Histogram2DImage: 256×256 pair heatmap, green intensity by count
//   - OverviewImage: downsampled whole-buffer map (see bytestats.BuildOverview)
//   - DotPlotImage: grey self-similarity matrix
//   - CloudImage: perspective projection of a 3D point cloud
//   - Plot: vertical value plot, used for entropy curves
//
// # Usage
//
//	h, _ := bytestats.PairHistogram(data, bytestats.DtypeU8)
//	img := render.Histogram2DImage(h, render.DefaultHeatmap())
//	_ = render.Save("pairs.png", render.Scale(img, 512, 512))
package render
