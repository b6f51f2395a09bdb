package record

type listOutput[R any] struct {
	Body []R
}

type createInput[C any] struct {
	Body C
}

type output[R any] struct {
	Body R
}

type findInput struct {
	ID int64 `path:"id" example:"1" doc:"ID записи"`
}

type updateInput[U any] struct {
	ID   int64 `path:"id" example:"1" doc:"ID записи"`
	Body U
}
