package importer

import (
	"path/filepath"
	"reflect"
	"testing"
)

type renamingAdder struct {
	renames map[string]string
	added   []string
}

func (a *renamingAdder) AddFile(srcPath string) (string, error) {
	name := filepath.Base(srcPath)
	a.added = append(a.added, name)
	if renamed, ok := a.renames[name]; ok {
		return renamed, nil
	}
	return name, nil
}

func TestTransferMediaRewritesRenamedReferences(t *testing.T) {
	srcDir := t.TempDir()
	writeMediaFile(t, srcDir, "pic.jpg", "image bytes")
	writeMediaFile(t, srcDir, "meow.mp3", "audio bytes")

	fields := []string{`<img src="pic.jpg"> 猫`, "[sound:meow.mp3] cat"}
	adder := &renamingAdder{renames: map[string]string{"pic.jpg": "pic-1.jpg"}}

	got, err := TransferMedia(fields, srcDir, adder)
	if err != nil {
		t.Fatalf("TransferMedia returned error: %v", err)
	}

	want := []string{`<img src="pic-1.jpg"> 猫`, "[sound:meow.mp3] cat"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TransferMedia() = %v, want %v", got, want)
	}
	if !reflect.DeepEqual(adder.added, []string{"pic.jpg", "meow.mp3"}) {
		t.Fatalf("unexpected transfer order %v", adder.added)
	}

	// The input slice is untouched.
	if fields[0] != `<img src="pic.jpg"> 猫` {
		t.Fatalf("input fields were mutated: %v", fields)
	}
}

func TestTransferMediaSkipsMissingFiles(t *testing.T) {
	srcDir := t.TempDir()

	fields := []string{"[sound:ghost.mp3] 猫"}
	adder := &renamingAdder{}

	got, err := TransferMedia(fields, srcDir, adder)
	if err != nil {
		t.Fatalf("TransferMedia returned error: %v", err)
	}
	if got[0] != fields[0] {
		t.Fatalf("expected dangling reference to be left alone, got %q", got[0])
	}
	if len(adder.added) != 0 {
		t.Fatalf("expected no transfers, got %v", adder.added)
	}
}
