// Command minithumb expands a packed minithumbnail blob into a viewable
// image file, optionally upscaled and blurred the way chat clients
// render the blurry placeholder before the real thumbnail arrives.
package main
