// Package filter implements the ggedit spatial filters.
//
// Every filter reads from a source ImageBuf that stays unchanged for the
// duration of the call and fills destination rows through a parallel.Executor:
//   - Brightness: saturating per-sample offset, in place
//   - GaussianBlur: square normalized kernel, clamp-to-edge convolution
//   - Rotate: arbitrary angle, canvas grown to fit, bilinear resampling
//   - Sobel: 3x3 gradient magnitude on gray (RGB averaged first)
//   - Resize: pixel-center mapping with bilinear resampling
//
// Filters validate their parameters before allocating anything. On error the
// source is left untouched and no destination is returned.
package filter
