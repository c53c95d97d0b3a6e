/*
Package json encodes tasks as JSON documents holding their
partitions, so they can be kept on stores outside the process
memory.
*/
package json

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pbanos/perfcart/dataset"
	"github.com/pbanos/perfcart/queue"
)

/*
TaskEncodeDecoder is an interface for objects
that allow encoding tasks as slices of bytes and
decoding them back to tasks. It is used to
serialize tasks into a representation to store on
redis
*/
type TaskEncodeDecoder interface {

	//Encode receives a *queue.Task
	// and returns a slice of bytes with the task encoded or an
	//error if the encoding could not be performed for
	//some reason. Its counterpart is Decode.
	Encode(context.Context, *queue.Task) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a *queue.Task decoded from the slice of bytes
	//or an error if the decoding could not be performed
	//for some reason.
	Decode(context.Context, []byte) (*queue.Task, error)
}

type jsonEncodeDecoder struct{}

type jsonTask struct {
	Label    string    `json:"id"`
	Depth    int       `json:"d"`
	Features []string  `json:"fs"`
	Target   string    `json:"t"`
	IDColumn string    `json:"idc,omitempty"`
	Rows     []jsonRow `json:"rs"`
}

type jsonRow struct {
	ID     string             `json:"id,omitempty"`
	Values map[string]float64 `json:"v"`
}

// New returns a TaskEncodeDecoder that encodes tasks as JSON.
func New() TaskEncodeDecoder {
	return &jsonEncodeDecoder{}
}

func (jed *jsonEncodeDecoder) Encode(ctx context.Context, t *queue.Task) ([]byte, error) {
	if t.Partition == nil {
		return nil, fmt.Errorf("encoding task as json: task has no partition")
	}
	p := t.Partition
	jt := &jsonTask{
		Label:    p.Label,
		Depth:    p.Depth,
		Features: p.Features,
		Target:   p.Target,
		IDColumn: p.IDColumn,
		Rows:     make([]jsonRow, len(p.Rows)),
	}
	for i, r := range p.Rows {
		jt.Rows[i] = jsonRow{ID: r.ID, Values: r.Values}
	}
	data, err := json.Marshal(jt)
	if err != nil {
		return nil, fmt.Errorf("encoding task %s as json: %v", t.ID(), err)
	}
	return data, nil
}

func (jed *jsonEncodeDecoder) Decode(ctx context.Context, data []byte) (*queue.Task, error) {
	jt := &jsonTask{}
	err := json.Unmarshal(data, jt)
	if err != nil {
		return nil, fmt.Errorf("decoding task from json: %v", err)
	}
	if jt.Label == "" {
		return nil, fmt.Errorf("decoding json task: no partition label")
	}
	p := &dataset.Partition{
		Label:    jt.Label,
		Depth:    jt.Depth,
		Features: jt.Features,
		Target:   jt.Target,
		IDColumn: jt.IDColumn,
		Rows:     make([]dataset.Row, len(jt.Rows)),
	}
	if p.Features == nil {
		p.Features = []string{}
	}
	for i, r := range jt.Rows {
		p.Rows[i] = dataset.NewRow(r.ID, r.Values)
	}
	err = p.Validate()
	if err != nil {
		return nil, fmt.Errorf("decoding json task %s: %w", jt.Label, err)
	}
	return queue.NewTask(p), nil
}
