package driven

// SourceOpener parses a model file into a ModelSource. The parser
// behind it is an external collaborator; a file that yields no
// entities at all is reported as domain.ErrEmptyModel.
type SourceOpener interface {
	Open(path string) (ModelSource, error)
}
