package axi

// A Response carries the outcome of one or more beats on a response channel.
// Data holds one entry per beat; entries are nil when the bus did not return
// data for the beat (write responses, or an unresolvable data signal).
type Response struct {
	Length int
	Data   []*uint32
	Resp   RespCode
}

// NewReadResponse builds a single-beat read response.
func NewReadResponse(resp RespCode, data *uint32) Response {
	return Response{Length: 1, Data: []*uint32{data}, Resp: resp}
}

// NewWriteResponse builds a single-beat write response.
func NewWriteResponse(resp RespCode) Response {
	return Response{Length: 1, Data: []*uint32{nil}, Resp: resp}
}

// A ResponseFIFO is an ordered queue of responses. Commands consume responses
// from the front, strictly in the order the beats were submitted.
type ResponseFIFO struct {
	responses []Response
}

// NewResponseFIFO creates a ResponseFIFO holding the given responses.
func NewResponseFIFO(responses ...Response) *ResponseFIFO {
	return &ResponseFIFO{responses: responses}
}

// Push adds a response at the tail of the queue.
func (f *ResponseFIFO) Push(r Response) {
	f.responses = append(f.responses, r)
}

// Pop removes and returns the response at the front of the queue.
func (f *ResponseFIFO) Pop() (Response, bool) {
	if len(f.responses) == 0 {
		return Response{}, false
	}

	r := f.responses[0]
	f.responses = f.responses[1:]

	return r, true
}

// Len returns the number of responses queued.
func (f *ResponseFIFO) Len() int {
	return len(f.responses)
}
