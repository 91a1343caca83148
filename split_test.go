// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package framing_test

import (
	"testing"

	"code.hybscloud.com/framing"
)

func TestSplitReadHalfAndWriteHalfShareTransport(t *testing.T) {
	rw := &pairedTransport{
		scriptedReader: &scriptedReader{steps: []step{{b: []byte("abc")}}},
		scriptedWriter: &scriptedWriter{limit: unboundedWriteLimit},
	}
	r, w := framing.Split(rw)

	p := make([]byte, 3)
	n, err := r.Read(p)
	if err != nil || n != 3 {
		t.Fatalf("Read() = (%d, %v)", n, err)
	}

	if _, err := w.Write([]byte("xyz")); err != nil {
		t.Fatalf("Write() err = %v", err)
	}
	if string(rw.scriptedWriter.written) != "xyz" {
		t.Fatalf("written = %q, want %q", rw.scriptedWriter.written, "xyz")
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() err = %v", err)
	}
	if err := w.Shutdown(); err != nil {
		t.Fatalf("Shutdown() err = %v", err)
	}
	if !rw.scriptedWriter.shutdown {
		t.Fatalf("Shutdown() did not reach the underlying transport")
	}
}
