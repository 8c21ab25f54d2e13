package charts

import (
	"errors"
	"fmt"
)

var (
	ErrContainerNotFound = errors.New("container not found")
	ErrConfiguration     = errors.New("invalid configuration")
	ErrDataShape         = errors.New("invalid data shape")
	ErrUnknownChartType  = errors.New("unknown chart type")
	ErrDegenerateData    = errors.New("degenerate data")
	ErrSeriesIndex       = errors.New("series index out of range")
)

type ContainerNotFoundError struct {
	ID string
}

func (e ContainerNotFoundError) Error() string {
	return fmt.Sprintf("container with id %q not found", e.ID)
}

func (e ContainerNotFoundError) Is(err error) bool {
	return err == ErrContainerNotFound
}

type ConfigurationError struct {
	Option string
	Reason string
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("option %q %s", e.Option, e.Reason)
}

func (e ConfigurationError) Is(err error) bool {
	return err == ErrConfiguration
}

type DataShapeError struct {
	Reason string
}

func (e DataShapeError) Error() string {
	return fmt.Sprintf("data: %s", e.Reason)
}

func (e DataShapeError) Is(err error) bool {
	return err == ErrDataShape
}

type UnknownChartTypeError struct {
	Type string
}

func (e UnknownChartTypeError) Error() string {
	return fmt.Sprintf("%s: unknown chart type", e.Type)
}

func (e UnknownChartTypeError) Is(err error) bool {
	return err == ErrUnknownChartType
}

// DegenerateDataWarning is reported when a render pass can not draw its data
// but nothing is wrong with the chart itself.
type DegenerateDataWarning struct {
	Reason string
}

func (e DegenerateDataWarning) Error() string {
	return e.Reason
}

func (e DegenerateDataWarning) Is(err error) bool {
	return err == ErrDegenerateData
}

type SeriesIndexError struct {
	Index int
	Count int
}

func (e SeriesIndexError) Error() string {
	return fmt.Sprintf("series index %d out of range (%d series)", e.Index, e.Count)
}

func (e SeriesIndexError) Is(err error) bool {
	return err == ErrSeriesIndex
}
