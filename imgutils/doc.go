// Package imgutils provides image processing kernels built on the
// visioncore views and dispatch primitives: rescaling, clamping, reductions,
// downsampling, channel join/split, thresholding, flipping and buffer
// differences.
//
// Every kernel is generic over the pixel type and the target. Extents are
// validated before anything is launched, so a kernel either returns a
// precondition error or processes the whole domain. Inputs and outputs of
// a kernel must not alias unless the kernel is documented as in-place.
package imgutils
